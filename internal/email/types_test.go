package email

import "testing"

func TestParseAddress(t *testing.T) {
	tests := []struct {
		in        string
		wantName  string
		wantEmail string
	}{
		{"News Digest <news@newsletter.com>", "News Digest", "news@newsletter.com"},
		{"news@newsletter.com", "", "news@newsletter.com"},
		{"  spaced@example.com  ", "", "spaced@example.com"},
		{"<bare@example.com>", "", "bare@example.com"},
	}

	for _, tt := range tests {
		got := ParseAddress(tt.in)
		if got.Name != tt.wantName || got.Email != tt.wantEmail {
			t.Errorf("ParseAddress(%q) = %+v, want {%s %s}", tt.in, got, tt.wantName, tt.wantEmail)
		}
	}
}

func TestAddressDomain(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"news@Newsletter.COM", "newsletter.com"},
		{"not-an-address", ""},
	}

	for _, tt := range tests {
		if got := (Address{Email: tt.in}).Domain(); got != tt.want {
			t.Errorf("Domain(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAddressString(t *testing.T) {
	a := Address{Name: "News Digest", Email: "news@newsletter.com"}
	if a.String() != "News Digest <news@newsletter.com>" {
		t.Errorf("unexpected String(): %s", a.String())
	}

	bare := Address{Email: "news@newsletter.com"}
	if bare.String() != "news@newsletter.com" {
		t.Errorf("unexpected String(): %s", bare.String())
	}
}
