package auth

import (
	"os"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	token, err := GenerateToken("64b1f0a2c3d4e5f601234567")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	subject, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if subject != "64b1f0a2c3d4e5f601234567" {
		t.Errorf("subject = %q", subject)
	}
}

func TestParseTokenGarbage(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	for _, tok := range []string{"", "not.a.token", "aaaa.bbbb.cccc"} {
		if _, err := ParseToken(tok); err == nil {
			t.Errorf("ParseToken(%q) accepted a garbage token", tok)
		}
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	os.Setenv("JWT_SECRET", "secret-one")
	token, err := GenerateToken("64b1f0a2c3d4e5f601234567")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	os.Setenv("JWT_SECRET", "secret-two")
	defer os.Unsetenv("JWT_SECRET")
	if _, err := ParseToken(token); err == nil {
		t.Error("token signed with another secret was accepted")
	}
}

func TestTokenTTL(t *testing.T) {
	defer os.Unsetenv("JWT_EXPIRE")

	cases := []struct {
		env  string
		want time.Duration
	}{
		{"", 72 * time.Hour},
		{"48", 48 * time.Hour},
		{"48h", 48 * time.Hour},
		{"30m", 30 * time.Minute},
		{"-1", 72 * time.Hour},
		{"soon", 72 * time.Hour},
	}
	for _, tc := range cases {
		os.Setenv("JWT_EXPIRE", tc.env)
		if got := tokenTTL(); got != tc.want {
			t.Errorf("JWT_EXPIRE=%q: ttl = %v, want %v", tc.env, got, tc.want)
		}
	}
}

func TestValidateRegister(t *testing.T) {
	valid := RegisterPayload{
		Name:           "Amara Diallo",
		Email:          "amara@example.com",
		Password:       "secret123",
		PhoneNumber:    "+22812345678",
		Role:           "nutritionist",
		Specialization: "Traditional nutrition",
		Experience:     4,
	}
	if errs := ValidateRegister(valid); len(errs) != 0 {
		t.Fatalf("valid payload rejected: %+v", errs)
	}

	cases := []struct {
		name  string
		mut   func(*RegisterPayload)
		field string
	}{
		{"missing name", func(p *RegisterPayload) { p.Name = " " }, "name"},
		{"bad email", func(p *RegisterPayload) { p.Email = "not-an-email" }, "email"},
		{"short password", func(p *RegisterPayload) { p.Password = "abc" }, "password"},
		{"missing phone", func(p *RegisterPayload) { p.PhoneNumber = "" }, "phoneNumber"},
		{"bad role", func(p *RegisterPayload) { p.Role = "wizard" }, "role"},
		{"missing specialization", func(p *RegisterPayload) { p.Specialization = "" }, "specialization"},
		{"zero experience", func(p *RegisterPayload) { p.Experience = 0 }, "experience"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := valid
			tc.mut(&p)
			errs := ValidateRegister(p)
			if len(errs) == 0 {
				t.Fatal("expected a validation error")
			}
			found := false
			for _, e := range errs {
				if e.Field == tc.field {
					found = true
				}
			}
			if !found {
				t.Errorf("no error for field %q in %+v", tc.field, errs)
			}
		})
	}
}
