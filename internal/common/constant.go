package common

// VaultTokenHeaderName carries the static credential on every call to the
// tokenization engine.
const VaultTokenHeaderName = "X-Vault-Token"

// RequestIDHeaderName is echoed back on every HTTP response.
const RequestIDHeaderName = "X-Request-Id"
