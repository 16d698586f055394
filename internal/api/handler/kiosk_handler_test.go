package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/ewaste-kiosk-backend/internal/domain/kiosk"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func kioskUpdateBody(t *testing.T, code string) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(KioskRequest{
		Code:      code,
		Location:  "Quezon City Hall",
		Latitude:  14.6507,
		Longitude: 121.0495,
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestKioskHandler_Update(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	adminID := uuid.New()

	t.Run("NormalizesCodeLikeCreate", func(t *testing.T) {
		mockKiosks := new(MockKioskService)
		h := NewKioskHandler(logger, mockKiosks)

		existing, err := kiosk.NewKiosk("QC-001", "Quezon City Hall", 14.6507, 121.0495)
		require.NoError(t, err)

		// Run the handler's closure against the stored kiosk the way the
		// service would, so the stored state reflects the edit.
		mockKiosks.On("UpdateKiosk", mock.Anything, existing.ID, mock.Anything).
			Run(func(args mock.Arguments) {
				apply := args.Get(2).(func(*kiosk.Kiosk) error)
				require.NoError(t, apply(existing))
			}).
			Return(existing, nil).Once()

		router := setupTestRouter()
		router.PUT("/admin/kiosks/:id", asAuthenticated(adminID, "admin"), h.Update)

		req, _ := http.NewRequest(http.MethodPut, "/admin/kiosks/"+existing.ID.String(), kioskUpdateBody(t, "  qc-002 "))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		// Lowercase input must land uppercased, or lookups by code miss.
		assert.Equal(t, "QC-002", existing.Code)

		var resp Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		data, err := json.Marshal(resp.Data)
		require.NoError(t, err)
		var kioskResp KioskResponse
		require.NoError(t, json.Unmarshal(data, &kioskResp))
		assert.Equal(t, "QC-002", kioskResp.Code)
	})

	t.Run("VersionConflictReturns409", func(t *testing.T) {
		mockKiosks := new(MockKioskService)
		h := NewKioskHandler(logger, mockKiosks)

		id := uuid.New()
		mockKiosks.On("UpdateKiosk", mock.Anything, id, mock.Anything).
			Return(nil, kiosk.ErrConcurrentModification{KioskID: id}).Once()

		router := setupTestRouter()
		router.PUT("/admin/kiosks/:id", asAuthenticated(adminID, "admin"), h.Update)

		req, _ := http.NewRequest(http.MethodPut, "/admin/kiosks/"+id.String(), kioskUpdateBody(t, "QC-001"))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("MalformedIDReturns400", func(t *testing.T) {
		mockKiosks := new(MockKioskService)
		h := NewKioskHandler(logger, mockKiosks)

		router := setupTestRouter()
		router.PUT("/admin/kiosks/:id", asAuthenticated(adminID, "admin"), h.Update)

		req, _ := http.NewRequest(http.MethodPut, "/admin/kiosks/not-a-uuid", kioskUpdateBody(t, "QC-001"))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockKiosks.AssertNotCalled(t, "UpdateKiosk", mock.Anything, mock.Anything, mock.Anything)
	})
}
