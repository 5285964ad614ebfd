package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRule_Matches(t *testing.T) {
	tests := []struct {
		name   string
		rule   Rule
		target string
		want   bool
	}{
		{
			name:   "empty rule matches everything",
			rule:   Rule{},
			target: "/home/u/notes.gpg",
			want:   true,
		},
		{
			name:   "glob on base name",
			rule:   Rule{Paths: []string{"*.age"}},
			target: "/home/u/secrets/notes.age",
			want:   true,
		},
		{
			name:   "glob miss",
			rule:   Rule{Paths: []string{"*.age"}},
			target: "/home/u/secrets/notes.gpg",
			want:   false,
		},
		{
			name:   "glob on full path",
			rule:   Rule{Paths: []string{"/home/u/work/**"}},
			target: "/home/u/work/deep/notes.gpg",
			want:   true,
		},
		{
			name:   "expression on extension",
			rule:   Rule{Match: `ext == ".asc"`},
			target: "/tmp/a.asc",
			want:   true,
		},
		{
			name:   "expression on name",
			rule:   Rule{Match: `name startsWith "work-"`},
			target: "/tmp/personal.gpg",
			want:   false,
		},
		{
			name:   "glob and expression both required",
			rule:   Rule{Paths: []string{"*.gpg"}, Match: `dir == "/srv"`},
			target: "/tmp/a.gpg",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.rule.Matches(tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigFile_ProfileFor(t *testing.T) {
	cfg := Defaults()
	cfg.Editor = "vim"
	cfg.Rules = []Rule{
		{Paths: []string{"*.age"}, Cipher: CipherAge},
		{Match: `name startsWith "work"`, Editor: "code --wait"},
		{Paths: []string{"work-legacy.*"}, Cipher: CipherGPG},
	}

	tests := []struct {
		target string
		want   Profile
	}{
		{target: "/x/home.gpg", want: Profile{Cipher: CipherGPG, Editor: "vim"}},
		{target: "/x/home.age", want: Profile{Cipher: CipherAge, Editor: "vim"}},
		{target: "/x/work.age", want: Profile{Cipher: CipherAge, Editor: "code --wait"}},
		{target: "/x/work-legacy.age", want: Profile{Cipher: CipherGPG, Editor: "code --wait"}},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			got, err := cfg.ProfileFor(tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
