package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// expandPath resolves environment references and a leading ~ in p.
// On Windows, %VAR% references and a ~\ prefix are honoured as well.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if runtime.GOOS == "windows" {
		p = expandPercentVars(p)
	}
	return expandHome(p)
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~") {
		return p
	}
	rest := p[1:]
	if rest != "" && rest[0] != '/' && !(runtime.GOOS == "windows" && rest[0] == '\\') {
		// ~user is not supported.
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if rest == "" {
		return home
	}
	return filepath.Join(home, rest[1:])
}

// expandPercentVars replaces %NAME% with the value of NAME. Unset names and
// a lone % are left untouched.
func expandPercentVars(p string) string {
	parts := strings.Split(p, "%")
	if len(parts) < 3 {
		return p
	}
	var b strings.Builder
	b.WriteString(parts[0])
	i := 1
	for ; i < len(parts)-1; i++ {
		name := parts[i]
		if val, ok := os.LookupEnv(name); ok && name != "" {
			b.WriteString(val)
			i++
			b.WriteString(parts[i])
			continue
		}
		b.WriteByte('%')
		b.WriteString(name)
	}
	for ; i < len(parts); i++ {
		b.WriteByte('%')
		b.WriteString(parts[i])
	}
	return b.String()
}
