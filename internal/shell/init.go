// pattern: Functional Core

// Package shell generates wrapper functions that let an interactive shell
// change into the directory prj prints on stdout.
package shell

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"text/template"
)

// ErrUnsupportedShell indicates a shell without a wrapper template.
var ErrUnsupportedShell = errors.New("unsupported shell")

// ErrInvalidFunctionName indicates a wrapper name the shells cannot define.
var ErrInvalidFunctionName = errors.New("invalid function name")

var validName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// The navigator draws on stderr, so the wrapper sends stderr to the
// terminal and captures only the selected path.
const posixTemplate = `function {{.Cmd}}() {
    local result
    result="$(\command {{.Bin}} "$@" 2>/dev/tty)"
    if [[ -n "$result" ]]; then
        \builtin cd -- "$result"
    fi
}
`

const fishTemplate = `function {{.Cmd}}
    set -l result (command {{.Bin}} $argv 2>/dev/tty)
    if test -n "$result"
        builtin cd -- $result
    end
end
`

const powershellTemplate = `function {{.Cmd}} {
    $result = & {{.Bin}} @args
    if ($result) {
        Set-Location -Path $result
    }
}
`

var templates = map[string]*template.Template{
	"bash":       template.Must(template.New("bash").Parse(posixTemplate)),
	"zsh":        template.Must(template.New("zsh").Parse(posixTemplate)),
	"fish":       template.Must(template.New("fish").Parse(fishTemplate)),
	"powershell": template.Must(template.New("powershell").Parse(powershellTemplate)),
}

var aliases = map[string]string{
	"pwsh": "powershell",
}

// Supported returns the shell names Generate accepts, sorted.
func Supported() []string {
	names := make([]string, 0, len(templates)+len(aliases))
	for name := range templates {
		names = append(names, name)
	}
	for name := range aliases {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Generate returns the init script defining function cmd for shell. The
// function runs bin with its arguments and changes into the printed path.
func Generate(shell, cmd, bin string) (string, error) {
	name := strings.ToLower(shell)
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	tmpl, ok := templates[name]
	if !ok {
		return "", fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedShell, shell, strings.Join(Supported(), ", "))
	}
	if !validName.MatchString(cmd) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFunctionName, cmd)
	}
	if bin == "" {
		bin = "prj"
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, struct{ Cmd, Bin string }{cmd, bin}); err != nil {
		return "", err
	}
	return sb.String(), nil
}
