package automation

import "testing"

func TestTextXPath(t *testing.T) {
	t.Parallel()
	tests := []struct {
		text string
		want string
	}{
		{"1. Translate ", `//*[text()[contains(normalize-space(.), "1. Translate")]]`},
		{"2. Download", `//*[text()[contains(normalize-space(.), "2. Download")]]`},
		{`say "hi"`, `//*[text()[contains(normalize-space(.), 'say "hi"')]]`},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			if got := textXPath(tt.text); got != tt.want {
				t.Errorf("textXPath(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestXPathLiteral_BothQuotes(t *testing.T) {
	t.Parallel()
	got := xpathLiteral(`it's "x"`)
	want := `concat("it's ", '"', "x", '"', "")`
	if got != want {
		t.Errorf("xpathLiteral() = %s, want %s", got, want)
	}
}

func TestNewRodLauncher(t *testing.T) {
	t.Parallel()
	l := NewRodLauncher(RodOptions{Headless: true, Proxy: "localhost:8080"})
	if !l.opts.Headless || l.opts.Proxy != "localhost:8080" {
		t.Errorf("options not kept: %+v", l.opts)
	}

	var _ Launcher = l
}
