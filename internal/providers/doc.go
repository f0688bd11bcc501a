// Package providers implements the Provider interface for each supported LLM
// backend.
//
// Supported kinds: OpenAI and DeepSeek (both through langchaingo's OpenAI
// client), AWS Bedrock (langchaingo over the aws-sdk-go-v2 runtime client),
// and self-hosted Hugging Face text-generation endpoints (plain JSON over
// HTTP). Gemini, Groq and custom backends are recognised but not implemented.
//
// Every provider issues exactly one request per Generate call. There are no
// retries and no streaming. Credentials are resolved once, at construction,
// from the explicit config value and then an environment snapshot; a missing
// credential fails [New] rather than the first call.
//
// HTTP clients can be injected with [WithHTTPClient] so that tests redirect
// calls to local httptest servers.
package providers
