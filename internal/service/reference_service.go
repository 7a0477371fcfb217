package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Alkan41/yakit-takip-api/internal/dto"
	"github.com/Alkan41/yakit-takip-api/internal/models"
	"github.com/Alkan41/yakit-takip-api/internal/repository"
	apperrors "github.com/Alkan41/yakit-takip-api/pkg/errors"
	"github.com/Alkan41/yakit-takip-api/pkg/gate"
)

// MsgBulkUpdateDone is the legacy bulk update confirmation.
const MsgBulkUpdateDone = "Toplu güncelleme başarılı."

// ReferenceService serves the admin panel snapshot and maintains the
// reference sheets and admin accounts.
type ReferenceService interface {
	PanelData(ctx context.Context) (dto.PanelData, error)
	BulkUpdate(ctx context.Context, payload dto.BulkUpdatePayload, actor string) error
	AddAdmin(ctx context.Context, admin dto.AdminUpsert, actor string) (models.AdminInfo, error)
	DeleteAdmin(ctx context.Context, id, actor string) error
}

type referenceService struct {
	refs     repository.ReferenceRepository
	records  RecordService
	gate     gate.Gate
	audit    repository.AuditRepository
	cache    repository.CacheRepository
	cacheTTL time.Duration
	log      *zap.Logger
}

// NewReferenceService wires the reference data service. cache may be nil
// when the panel cache is disabled.
func NewReferenceService(
	refs repository.ReferenceRepository,
	records RecordService,
	g gate.Gate,
	audit repository.AuditRepository,
	cache repository.CacheRepository,
	cacheTTL time.Duration,
	log *zap.Logger,
) ReferenceService {
	return &referenceService{
		refs: refs, records: records, gate: g,
		audit: audit, cache: cache, cacheTTL: cacheTTL, log: log,
	}
}

// PanelData returns the bootstrap snapshot for the admin panel, served from
// cache when one is configured.
func (s *referenceService) PanelData(ctx context.Context) (dto.PanelData, error) {
	if s.cache != nil {
		var cached dto.PanelData
		err := s.cache.GetJSON(ctx, PanelCacheKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !apperrors.Is(err, apperrors.ErrCacheMiss) {
			s.log.Warn("panel cache read failed", zap.Error(err))
		}
	}

	panel, err := s.buildPanelData(ctx)
	if err != nil {
		return dto.PanelData{}, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, PanelCacheKey, panel, s.cacheTTL); err != nil {
			s.log.Warn("panel cache write failed", zap.Error(err))
		}
	}
	return panel, nil
}

func (s *referenceService) buildPanelData(ctx context.Context) (dto.PanelData, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return dto.PanelData{}, err
	}
	aircrafts, err := s.refs.ListAircrafts(ctx)
	if err != nil {
		return dto.PanelData{}, err
	}
	tankers, err := s.refs.ListTankers(ctx)
	if err != nil {
		return dto.PanelData{}, err
	}
	personnel, err := s.refs.ListPersonnel(ctx)
	if err != nil {
		return dto.PanelData{}, err
	}
	airports, err := s.refs.ListAirports(ctx)
	if err != nil {
		return dto.PanelData{}, err
	}
	admins, err := s.refs.ListAdmins(ctx)
	if err != nil {
		return dto.PanelData{}, err
	}

	infos := make([]models.AdminInfo, 0, len(admins))
	for _, admin := range admins {
		infos = append(infos, models.AdminInfo{ID: admin.ID, Name: admin.Name, Username: admin.Username})
	}

	return dto.PanelData{
		FuelRecords: records,
		Aircrafts:   aircrafts,
		Tankers:     tankers,
		Personnel:   personnel,
		Admins:      infos,
		Airports:    airports,
	}, nil
}

// BulkUpdate rewrites the reference sheets present in the payload. Fuel
// record rewrites route through the record service so its validation runs.
func (s *referenceService) BulkUpdate(ctx context.Context, payload dto.BulkUpdatePayload, actor string) error {
	if payload.FuelRecords != nil {
		if err := s.records.BulkReplace(ctx, payload.FuelRecords, actor); err != nil {
			return err
		}
	}

	release, err := s.gate.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	if payload.AircraftData != nil {
		if err := s.refs.ReplaceAircrafts(ctx, payload.AircraftData); err != nil {
			return err
		}
		emitAudit(ctx, s.audit, s.log, models.AuditReferenceUpdated, actor, "aircrafts", "")
	}
	if payload.TankerData != nil {
		if err := s.refs.ReplaceTankers(ctx, payload.TankerData); err != nil {
			return err
		}
		emitAudit(ctx, s.audit, s.log, models.AuditReferenceUpdated, actor, "tankers", "")
	}
	if payload.PersonnelList != nil {
		if err := s.refs.ReplacePersonnel(ctx, payload.PersonnelList); err != nil {
			return err
		}
		emitAudit(ctx, s.audit, s.log, models.AuditReferenceUpdated, actor, "personnel", "")
	}
	if payload.AirportList != nil {
		if err := s.refs.ReplaceAirports(ctx, payload.AirportList); err != nil {
			return err
		}
		emitAudit(ctx, s.audit, s.log, models.AuditReferenceUpdated, actor, "airports", "")
	}
	if payload.Admins != nil {
		if err := s.replaceAdmins(ctx, payload.Admins); err != nil {
			return err
		}
		emitAudit(ctx, s.audit, s.log, models.AuditReferenceUpdated, actor, "admins", "")
	}

	invalidatePanelCache(ctx, s.cache, s.log)
	return nil
}

// replaceAdmins rewrites the admin sheet one row at a time so plaintext
// passwords coming from the legacy panel get hashed on the way in.
func (s *referenceService) replaceAdmins(ctx context.Context, admins []dto.AdminUpsert) error {
	existing, err := s.refs.ListAdmins(ctx)
	if err != nil {
		return err
	}
	for _, admin := range existing {
		if _, err := s.refs.DeleteAdminByID(ctx, admin.ID); err != nil {
			return err
		}
	}
	for _, admin := range admins {
		credential, err := s.credentialFor(admin)
		if err != nil {
			return err
		}
		id := admin.ID
		if id == "" {
			id = uuid.NewString()
		}
		user := models.AdminUser{ID: id, Name: admin.Name, Username: admin.Username}
		if err := s.refs.AppendAdmin(ctx, user, credential); err != nil {
			return err
		}
	}
	return nil
}

func (s *referenceService) AddAdmin(ctx context.Context, admin dto.AdminUpsert, actor string) (models.AdminInfo, error) {
	if admin.Username == "" || admin.Password == "" {
		return models.AdminInfo{}, apperrors.New(
			apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, "kullanıcı adı ve parola zorunludur")
	}
	existing, err := s.refs.ListAdmins(ctx)
	if err != nil {
		return models.AdminInfo{}, err
	}
	for _, a := range existing {
		if a.Username == admin.Username {
			return models.AdminInfo{}, apperrors.Clone(apperrors.ErrConflict, "bu kullanıcı adı zaten kayıtlı")
		}
	}

	credential, err := HashPassword(admin.Password)
	if err != nil {
		return models.AdminInfo{}, err
	}

	release, err := s.gate.Acquire(ctx)
	if err != nil {
		return models.AdminInfo{}, err
	}
	defer release()

	id := admin.ID
	if id == "" {
		id = uuid.NewString()
	}
	user := models.AdminUser{ID: id, Name: admin.Name, Username: admin.Username}
	if err := s.refs.AppendAdmin(ctx, user, credential); err != nil {
		return models.AdminInfo{}, err
	}

	emitAudit(ctx, s.audit, s.log, models.AuditReferenceUpdated, actor, "admins", "added "+admin.Username)
	invalidatePanelCache(ctx, s.cache, s.log)
	return models.AdminInfo{ID: id, Name: admin.Name, Username: admin.Username}, nil
}

func (s *referenceService) DeleteAdmin(ctx context.Context, id, actor string) error {
	release, err := s.gate.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	deleted, err := s.refs.DeleteAdminByID(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.Clone(apperrors.ErrNotFound, "yönetici bulunamadı")
	}

	emitAudit(ctx, s.audit, s.log, models.AuditReferenceUpdated, actor, "admins", "deleted "+id)
	invalidatePanelCache(ctx, s.cache, s.log)
	return nil
}

// credentialFor keeps already-hashed passwords as they are and hashes new
// plaintext ones.
func (s *referenceService) credentialFor(admin dto.AdminUpsert) (string, error) {
	if strings.HasPrefix(admin.Password, "$2") {
		return admin.Password, nil
	}
	return HashPassword(admin.Password)
}
