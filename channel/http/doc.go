// Package http implements the issuer channel over HTTP. Logical addresses
// are resolved against a base URL, and an optional session credential is
// attached as a bearer header. The credential can be static, read from a
// hot-reloaded file, or loaded through a scy secret resource.
package http
