package handler_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"amorlias/internal/domain"
	"amorlias/internal/handler"
	"amorlias/internal/label"
	"amorlias/internal/service"
	"amorlias/mocks"
)

func TestLabelHandler_Preview(t *testing.T) {
	svc := new(mocks.MockLabelService)
	h := handler.NewLabelHandler(svc)
	id := uuid.New()
	svc.On("Preview", mock.Anything, id).Return(&label.ShippingLabel{
		OrderID:         id,
		OrderNumber:     "ORD-20260101-000042",
		DestinationCode: "Mumbai_Maharashtra_D",
	}, nil)

	c, w := newContext(t, http.MethodGet, "/", nil)
	withID(c, id.String())
	h.Preview(c)

	require.Equal(t, http.StatusOK, w.Code)
	var got label.ShippingLabel
	decodeData(t, w, &got)
	assert.Equal(t, "Mumbai_Maharashtra_D", got.DestinationCode)
}

func TestLabelHandler_Preview_MissingSettings(t *testing.T) {
	svc := new(mocks.MockLabelService)
	h := handler.NewLabelHandler(svc)
	id := uuid.New()
	svc.On("Preview", mock.Anything, id).Return(nil, domain.ErrMissingSettings)

	c, w := newContext(t, http.MethodGet, "/", nil)
	withID(c, id.String())
	h.Preview(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "SETTINGS_INCOMPLETE", decode(t, w).Error.Code)
}

func TestLabelHandler_PDF(t *testing.T) {
	svc := new(mocks.MockLabelService)
	h := handler.NewLabelHandler(svc)
	id := uuid.New()
	pdf := []byte("%PDF-1.7 test")
	svc.On("RenderPDF", mock.Anything, id).Return(pdf, &label.ShippingLabel{OrderNumber: "ORD-20260101-000042"}, nil)

	c, w := newContext(t, http.MethodGet, "/", nil)
	withID(c, id.String())
	h.PDF(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `inline; filename="label_ORD-20260101-000042.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, pdf, w.Body.Bytes())
}

func TestLabelHandler_PDF_InvalidID(t *testing.T) {
	svc := new(mocks.MockLabelService)
	h := handler.NewLabelHandler(svc)

	c, w := newContext(t, http.MethodGet, "/", nil)
	withID(c, "42")
	h.PDF(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "RenderPDF")
}

func TestLabelHandler_Archive(t *testing.T) {
	svc := new(mocks.MockLabelService)
	h := handler.NewLabelHandler(svc)
	id := uuid.New()
	svc.On("Archive", mock.Anything, id).Return(&service.ArchivedLabel{
		Key:       "labels/ORD-20260101-000042.pdf",
		URL:       "https://example.invalid/labels/ORD-20260101-000042.pdf",
		ExpiresIn: 3600,
	}, nil)

	c, w := newContext(t, http.MethodPost, "/", nil)
	withID(c, id.String())
	h.Archive(c)

	require.Equal(t, http.StatusOK, w.Code)
	var got service.ArchivedLabel
	decodeData(t, w, &got)
	assert.Equal(t, int64(3600), got.ExpiresIn)
}

func TestLabelHandler_Archive_Disabled(t *testing.T) {
	svc := new(mocks.MockLabelService)
	h := handler.NewLabelHandler(svc)
	id := uuid.New()
	svc.On("Archive", mock.Anything, id).Return(nil, domain.ErrArchiveDisabled)

	c, w := newContext(t, http.MethodPost, "/", nil)
	withID(c, id.String())
	h.Archive(c)

	assert.Equal(t, http.StatusNotImplemented, w.Code)
}
