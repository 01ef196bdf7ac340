package account_test

import (
	"errors"
	"testing"
	"time"

	"advisory/internal/domain/account"
)

// TestAccount_Validate tests validation of Account.
func TestAccount_Validate(t *testing.T) {
	tests := []struct {
		name    string
		acct    account.Account
		wantErr bool
	}{
		{name: "valid student", acct: account.Account{ID: "1", Email: "s@example.com", Role: account.RoleStudent}, wantErr: false},
		{name: "valid admin", acct: account.Account{ID: "2", Email: "a@example.com", Role: account.RoleAdmin}, wantErr: false},
		{name: "empty email", acct: account.Account{ID: "3", Email: "", Role: account.RoleStudent}, wantErr: true},
		{name: "email without at sign", acct: account.Account{ID: "4", Email: "nope", Role: account.RoleStudent}, wantErr: true},
		{name: "invalid role", acct: account.Account{ID: "5", Email: "x@example.com", Role: "coach"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.acct.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Account.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestAccount_PasswordRoundTrip tests hashing and verification.
func TestAccount_PasswordRoundTrip(t *testing.T) {
	var a account.Account

	if err := a.SetPassword(""); !errors.Is(err, account.ErrEmptyPassword) {
		t.Errorf("SetPassword(\"\") error = %v, want ErrEmptyPassword", err)
	}
	if err := a.SetPassword("corto"); !errors.Is(err, account.ErrPasswordTooShort) {
		t.Errorf("SetPassword(short) error = %v, want ErrPasswordTooShort", err)
	}

	if err := a.SetPassword("secreta123"); err != nil {
		t.Fatalf("SetPassword() error = %v", err)
	}
	if a.PasswordHash == "secreta123" || a.PasswordHash == "" {
		t.Fatal("SetPassword() did not hash the password")
	}
	if err := a.CheckPassword("secreta123"); err != nil {
		t.Errorf("CheckPassword(correct) error = %v", err)
	}
	if err := a.CheckPassword("otra"); !errors.Is(err, account.ErrWrongPassword) {
		t.Errorf("CheckPassword(wrong) error = %v, want ErrWrongPassword", err)
	}
}

// TestAccount_Lockout tests the failed-login lock behaviour.
func TestAccount_Lockout(t *testing.T) {
	var a account.Account

	for i := 0; i < 4; i++ {
		a.RecordFailedLogin()
	}
	if a.IsLocked() {
		t.Fatal("account locked before 5 failures")
	}

	a.RecordFailedLogin()
	if !a.IsLocked() {
		t.Fatal("account not locked after 5 failures")
	}

	a.ResetFailedLogins()
	if a.IsLocked() || a.FailedLogins != 0 || !a.LockedUntil.Equal(time.Time{}) {
		t.Error("ResetFailedLogins() did not clear the lock")
	}
}
