// Package translate renders user visible messages in the user's language.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("td4: locale: %v", err)
	}

	printer = NewPrinter(locales...)
}

// NewPrinter returns a message printer for the best match among the
// requested locales, falling back to en-US.
func NewPrinter(locales ...string) *message.Printer {
	if len(locales) == 0 {
		return message.NewPrinter(language.AmericanEnglish)
	}

	return message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
