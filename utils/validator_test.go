package utils

import "testing"

type sampleSignup struct {
	Name                 string `validate:"required,nameok"`
	Email                string `validate:"required,email"`
	Password             string `validate:"required,pwdmin"`
	PasswordConfirmation string `validate:"required,eqfield=Password"`
}

func TestValidateStruct_OK(t *testing.T) {
	s := sampleSignup{
		Name:                 "Dana Smith",
		Email:                "dana@example.com",
		Password:             "secret1",
		PasswordConfirmation: "secret1",
	}
	if err := ValidateStruct(&s); err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}
}

func TestValidateStruct_Required(t *testing.T) {
	s := sampleSignup{Email: "dana@example.com", Password: "secret1", PasswordConfirmation: "secret1"}
	if err := ValidateStruct(&s); err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestValidateStruct_Email(t *testing.T) {
	s := sampleSignup{Name: "Dana", Email: "not-an-email", Password: "secret1", PasswordConfirmation: "secret1"}
	if err := ValidateStruct(&s); err == nil {
		t.Fatal("expected error for malformed email")
	}
}

func TestValidateStruct_PasswordMin(t *testing.T) {
	s := sampleSignup{Name: "Dana", Email: "dana@example.com", Password: "abc", PasswordConfirmation: "abc"}
	if err := ValidateStruct(&s); err == nil {
		t.Fatal("expected error for short password")
	}
}

func TestValidateStruct_EqField(t *testing.T) {
	s := sampleSignup{Name: "Dana", Email: "dana@example.com", Password: "secret1", PasswordConfirmation: "secret2"}
	if err := ValidateStruct(&s); err == nil {
		t.Fatal("expected error for mismatched confirmation")
	}
}
