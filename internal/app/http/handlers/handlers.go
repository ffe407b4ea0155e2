package handlers

import (
	"sync"

	"github.com/go-playground/validator/v10"

	"wm-ferretero/go_backend/internal/app/config"
	"wm-ferretero/go_backend/internal/domain/masterdata"
	"wm-ferretero/go_backend/internal/domain/quotation/pdf"
	pdfgen "wm-ferretero/go_backend/internal/domain/quotation/pdf/gofpdf"
	"wm-ferretero/go_backend/internal/store"
)

type Handlers struct {
	Store  store.Store
	Cfg    config.Config
	Lookup *masterdata.Lookup
	Gen    pdf.Generator

	validate *validator.Validate

	mu     sync.Mutex
	drafts map[string]*draft
}

func New(st store.Store, cfg config.Config) *Handlers {
	return &Handlers{
		Store:  st,
		Cfg:    cfg,
		Lookup: masterdata.NewLookup(st),
		Gen: pdfgen.New(pdfgen.Options{
			LogoPath:      cfg.LogoPath,
			SignaturePath: cfg.SignaturePath,
		}),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		drafts:   make(map[string]*draft),
	}
}
