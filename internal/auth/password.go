package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a staff account password at the given bcrypt cost.
// Used when accounts are provisioned; the portal never stores plaintext.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword checks a login attempt against the stored staff hash.
func ComparePassword(storedHash, attempt string) error {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(attempt))
}
