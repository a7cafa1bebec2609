package presets

import (
	"github.com/xonecas/hitext/internal/rules"
	"github.com/xonecas/hitext/internal/style"
)

var bareURL = rules.MustCompile(
	`((?:http|https)://)?(?:www\.)?[\w\d\-_]+\.\w{2,3}(\.\w{2})?(/(?<=/)(?:[\w\d\-./_]+)?)?`, 0)

// URL underlines bare URLs and links each one to the URL it spells.
func URL() []rules.Rule {
	return []rules.Rule{
		rules.MustNew(bareURL,
			rules.Set(style.KeyUnderline, style.LineSingle),
			rules.Compute(style.KeyLink, rules.LinkFromMatch),
		),
	}
}
