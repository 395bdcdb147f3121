package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/co2dash/internal/adapters/export"
	"github.com/okian/co2dash/internal/domain/render"
)

// ExportHandler serves figures as SVG or PNG images.
type ExportHandler struct {
	deps Dependencies
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps Dependencies) *ExportHandler {
	return &ExportHandler{deps: deps}
}

// HandleExport handles GET /api/export/{figure}.{format}?country=&year=.
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	const op = "api.export"
	file := r.PathValue("file")
	name, ext, ok := strings.Cut(file, ".")
	if !ok {
		writeFailure(w, WrapKind(op, ErrBadRequest, fmt.Errorf("%q has no format extension", file)))
		return
	}
	id, err := render.ParseID(name)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	format, err := export.ParseFormat(ext)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	sel, err := selectionFromQuery(r)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}

	var buf bytes.Buffer
	if err := h.deps.Export(r.Context(), &buf, id, format, sel); err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", file))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
