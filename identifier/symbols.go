package identifier

import "strings"

// greek holds the names that have a LaTeX command of the same spelling.
var greek = map[string]bool{
	"alpha": true, "beta": true, "gamma": true, "delta": true, "epsilon": true,
	"zeta": true, "eta": true, "theta": true, "iota": true, "kappa": true,
	"lambda": true, "mu": true, "nu": true, "xi": true, "pi": true, "rho": true,
	"sigma": true, "tau": true, "phi": true, "chi": true, "psi": true, "omega": true,
	"Gamma": true, "Delta": true, "Theta": true, "Lambda": true, "Xi": true,
	"Pi": true, "Sigma": true, "Upsilon": true, "Phi": true, "Psi": true, "Omega": true,
}

// aliases maps common ASCII spellings to LaTeX commands.
var aliases = map[string]string{
	"eps":      `\epsilon`,
	"lbd":      `\lambda`,
	"Lbd":      `\Lambda`,
	"inf":      `\infty`,
	"infinity": `\infty`,
	"infty":    `\infty`,
}

// ConvertSymbols maps a bare name to its typeset symbol: Greek letter names
// gain a backslash, a few aliases are expanded, and "Delta" inside a longer
// name becomes "\Delta " so that "DeltaE" reads as a difference.
func ConvertSymbols(name string) string {
	if greek[name] {
		return `\` + name
	}
	if sym, ok := aliases[name]; ok {
		return sym
	}
	if strings.Contains(name, "Delta") {
		return strings.ReplaceAll(name, "Delta", `\Delta `)
	}
	return name
}
