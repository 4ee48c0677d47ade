// Package util provides shared helpers for safe file-path validation and
// log-payload truncation used across imposterd packages.
//
//   - SafeFilePath / SafeFilePathAllowAbsolute — reject path-traversal attempts
//   - TruncateBody — cap request/response payloads for safe logging
package util
