/*
Package security provides AES-256-GCM encryption for POS integration
credentials at rest.

CredentialCipher encrypts the opaque EncryptedCredentials blob stored on
a types.POSIntegration (FTP password, API token, shared secret) before
it reaches storage, and decrypts it just before a vendor adapter needs
it to open a connection. The key itself comes from the
NAXML_CREDENTIAL_KEY environment variable; deriving, rotating, or
custodying that key via an HSM or secrets manager is outside this
package's scope.
*/
package security
