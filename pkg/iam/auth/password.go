package auth

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 12

// PasswordService hashes and verifies user passwords.
type PasswordService interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// BcryptPasswordService implements PasswordService with bcrypt.
type BcryptPasswordService struct{}

func NewBcryptPasswordService() *BcryptPasswordService {
	return &BcryptPasswordService{}
}

func (s *BcryptPasswordService) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *BcryptPasswordService) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
