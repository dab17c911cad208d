package interfaces

// ITokenVerifier validates a bearer token and extracts the vendor ID it was
// issued for. Token issuance belongs to the auth service, not this core.
type ITokenVerifier interface {
	Verify(token string) (string, error)
}
