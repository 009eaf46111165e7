package i18n

import (
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
)

var UT = ut.New(en.New(), en.New(), es.New())
