package security

import (
	"bytes"
	"os"
	"testing"
)

func TestNewCredentialCipher(t *testing.T) {
	tests := []struct {
		name    string
		key     []byte
		wantErr bool
	}{
		{name: "valid 32-byte key", key: make([]byte, 32), wantErr: false},
		{name: "invalid short key", key: make([]byte, 16), wantErr: true},
		{name: "invalid long key", key: make([]byte, 64), wantErr: true},
		{name: "empty key", key: []byte{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCredentialCipher(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewCredentialCipher() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && c == nil {
				t.Error("NewCredentialCipher() returned nil without error")
			}
		})
	}
}

func TestNewCredentialCipherFromEnv(t *testing.T) {
	t.Run("set", func(t *testing.T) {
		t.Setenv(CredentialKeyEnvVar, "a-passphrase-of-any-length")
		c, err := NewCredentialCipherFromEnv()
		if err != nil {
			t.Fatalf("NewCredentialCipherFromEnv() error = %v", err)
		}
		if c == nil {
			t.Fatal("NewCredentialCipherFromEnv() returned nil without error")
		}
	})

	t.Run("unset", func(t *testing.T) {
		os.Unsetenv(CredentialKeyEnvVar)
		if _, err := NewCredentialCipherFromEnv(); err == nil {
			t.Error("NewCredentialCipherFromEnv() should fail when env var is unset")
		}
	})
}

func TestEncryptDecryptRoundtrip(t *testing.T) {
	key := make([]byte, 32)
	copy(key, []byte("test-encryption-key-32-bytes-!!"))

	c, err := NewCredentialCipher(key)
	if err != nil {
		t.Fatalf("Failed to create CredentialCipher: %v", err)
	}

	tests := []struct {
		name      string
		plaintext []byte
	}{
		{name: "simple string", plaintext: []byte("hello world")},
		{name: "json data", plaintext: []byte(`{"username":"admin","password":"secret123"}`)},
		{name: "binary data", plaintext: []byte{0x00, 0x01, 0x02, 0xFF, 0xFE, 0xFD}},
		{name: "large data", plaintext: bytes.Repeat([]byte("test"), 1000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ciphertext, err := c.Encrypt(tt.plaintext)
			if err != nil {
				t.Fatalf("Encrypt() error = %v", err)
			}
			if bytes.Equal(ciphertext, tt.plaintext) {
				t.Error("Ciphertext should not equal plaintext")
			}

			decrypted, err := c.Decrypt(ciphertext)
			if err != nil {
				t.Fatalf("Decrypt() error = %v", err)
			}
			if !bytes.Equal(decrypted, tt.plaintext) {
				t.Errorf("Decrypted data does not match original.\nGot:  %v\nWant: %v", decrypted, tt.plaintext)
			}
		})
	}
}

func TestEncrypt_Errors(t *testing.T) {
	key := make([]byte, 32)
	c, _ := NewCredentialCipher(key)

	tests := []struct {
		name      string
		plaintext []byte
		wantErr   bool
	}{
		{name: "empty data", plaintext: []byte{}, wantErr: true},
		{name: "nil data", plaintext: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Encrypt(tt.plaintext)
			if (err != nil) != tt.wantErr {
				t.Errorf("Encrypt() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecrypt_Errors(t *testing.T) {
	key := make([]byte, 32)
	c, _ := NewCredentialCipher(key)

	tests := []struct {
		name       string
		ciphertext []byte
		wantErr    bool
	}{
		{name: "empty data", ciphertext: []byte{}, wantErr: true},
		{name: "nil data", ciphertext: nil, wantErr: true},
		{name: "too short data", ciphertext: []byte{0x01, 0x02}, wantErr: true},
		{name: "corrupted data", ciphertext: bytes.Repeat([]byte("x"), 100), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Decrypt(tt.ciphertext)
			if (err != nil) != tt.wantErr {
				t.Errorf("Decrypt() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecryptWithWrongKey(t *testing.T) {
	key1 := make([]byte, 32)
	copy(key1, []byte("key-one-32-bytes-long-!!!!!!!!!!"))

	key2 := make([]byte, 32)
	copy(key2, []byte("key-two-32-bytes-long-!!!!!!!!!!"))

	c1, _ := NewCredentialCipher(key1)
	c2, _ := NewCredentialCipher(key2)

	plaintext := []byte("secret data")

	ciphertext, err := c1.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	if _, err = c2.Decrypt(ciphertext); err == nil {
		t.Error("Decrypt() should fail with wrong key")
	}
}
