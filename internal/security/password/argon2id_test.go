package password

import (
	"strings"
	"testing"
)

// Params bajos para que el test no queme CPU.
var testParams = Params{Memory: 8 * 1024, Time: 1, Parallelism: 1, KeyLen: 32}

func TestHashAndVerify(t *testing.T) {
	phc, err := Hash(testParams, "correct horse battery staple")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(phc, "$argon2id$v=19$") {
		t.Fatalf("unexpected PHC format: %s", phc)
	}
	if !Verify("correct horse battery staple", phc) {
		t.Fatal("expected verify to succeed")
	}
	if Verify("wrong password", phc) {
		t.Fatal("expected verify to fail")
	}
}

func TestHashEmptyPassword(t *testing.T) {
	if _, err := Hash(testParams, ""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestVerifyGarbage(t *testing.T) {
	if Verify("x", "not-a-phc-string") {
		t.Fatal("garbage hash must not verify")
	}
	if Verify("x", "$argon2id$v=18$m=8,t=1,p=1$AAAA$AAAA") {
		t.Fatal("wrong version must not verify")
	}
}

func TestPolicy(t *testing.T) {
	if err := Validate("short"); err != ErrTooShort {
		t.Fatalf("got %v", err)
	}
	if err := Validate(strings.Repeat("a", 129)); err != ErrTooLong {
		t.Fatalf("got %v", err)
	}
	if err := Validate("long enough"); err != nil {
		t.Fatalf("got %v", err)
	}
}
