// Package server exposes the comment review over HTTP.
//
// POST /v1/api/generate accepts {provider, model_name, code, file_struct},
// runs one comment review against the named provider and answers with the
// validated result object. Credentials come from the server's environment.
package server
