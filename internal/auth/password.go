package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt-hashes a customer or staff credential. Cost comes from
// config (tests use a low cost to stay fast).
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword checks a plaintext credential against its stored hash.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
