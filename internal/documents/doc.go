// Package documents turns a folder of analysis reports into prompt text for
// the issue-filing run.
//
// Recognised files: sonar.json (SonarQube export, rendered as an issue list
// plus a quality-gate summary), *.xml (converted to indented JSON), other
// *.json and *.txt files (included verbatim). Anything else is ignored.
package documents
