package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash := HashPassword("s3cret")
	if hash == "" {
		t.Fatal("empty hash")
	}
	if hash == "s3cret" {
		t.Fatal("hash must not equal plaintext")
	}
	if !CheckPassword("s3cret", hash) {
		t.Fatal("correct password rejected")
	}
	if CheckPassword("wrong", hash) {
		t.Fatal("wrong password accepted")
	}
}

func TestCheckPasswordRejectsMalformedHash(t *testing.T) {
	if CheckPassword("anything", "not-a-bcrypt-hash") {
		t.Fatal("malformed hash accepted")
	}
}
