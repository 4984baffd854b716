package service

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/home/admission_results/dto"
	"schoolku_backend/internals/features/home/admission_results/model"
	helper "schoolku_backend/internals/helpers"
)

const importBatch = 200

type ListFilter struct {
	Class     string
	Promotion string
	Search    string
}

func List(ctx context.Context, db *gorm.DB, f ListFilter, p helper.Params) ([]model.AdmissionResultModel, int64, error) {
	q := db.WithContext(ctx).Model(&model.AdmissionResultModel{})
	if f.Class != "" {
		q = q.Where("result_class = ?", f.Class)
	}
	if f.Promotion != "" {
		q = q.Where("result_promotion = ?", f.Promotion)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		q = q.Where("result_last_name ILIKE ? OR result_first_name ILIKE ?", like, like)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count admission results")
	}
	var out []model.AdmissionResultModel
	err := q.Order("result_promotion DESC, result_class, result_last_name, result_first_name").
		Limit(p.Limit()).Offset(p.Offset()).Find(&out).Error
	return out, total, errors.Wrap(err, "list admission results")
}

// Distinct: nilai unik satu kolom (filter dropdown). publishedOnly untuk halaman publik.
func Distinct(ctx context.Context, db *gorm.DB, column string, publishedOnly bool) ([]string, error) {
	if column != "result_class" && column != "result_promotion" {
		return nil, errors.Errorf("distinct: kolom %q tidak diizinkan", column)
	}
	q := db.WithContext(ctx).Model(&model.AdmissionResultModel{})
	if publishedOnly {
		q = q.Where("result_published = TRUE")
	}
	var out []string
	err := q.Distinct(column).Order(column + " DESC").Pluck(column, &out).Error
	return out, errors.Wrap(err, "distinct "+column)
}

// Lookup: nom + classe + promotion, tanpa beda kapital, hanya yang publié.
// Prénom (jika diisi) harus cocok juga.
func Lookup(ctx context.Context, db *gorm.DB, form dto.LookupForm) (*model.AdmissionResultModel, error) {
	form.Normalize()
	if !form.Ready() {
		return nil, helper.NewValidationError("Le nom, la classe et la promotion sont obligatoires.")
	}
	q := db.WithContext(ctx).
		Where("LOWER(result_last_name) = LOWER(?)", form.LastName).
		Where("LOWER(result_class) = LOWER(?)", form.Class).
		Where("LOWER(result_promotion) = LOWER(?)", form.Promotion).
		Where("result_published = TRUE")
	if form.FirstName != "" {
		q = q.Where("LOWER(result_first_name) = LOWER(?)", form.FirstName)
	}
	var m model.AdmissionResultModel
	if err := q.Order("result_created_at").Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "lookup admission result")
	}
	return &m, nil
}

func Get(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.AdmissionResultModel, error) {
	var m model.AdmissionResultModel
	if err := db.WithContext(ctx).First(&m, "result_id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "Résultat")
	}
	return &m, nil
}

func Create(ctx context.Context, db *gorm.DB, form dto.ResultForm) (*model.AdmissionResultModel, error) {
	form.Normalize()
	if err := helper.ValidateStruct(&form); err != nil {
		return nil, err
	}
	var m model.AdmissionResultModel
	form.ApplyTo(&m)
	if err := db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, errors.Wrap(err, "create admission result")
	}
	return &m, nil
}

func Update(ctx context.Context, db *gorm.DB, id uuid.UUID, form dto.ResultForm) (*model.AdmissionResultModel, error) {
	form.Normalize()
	if err := helper.ValidateStruct(&form); err != nil {
		return nil, err
	}
	m, err := Get(ctx, db, id)
	if err != nil {
		return nil, err
	}
	form.ApplyTo(m)
	if err := db.WithContext(ctx).Save(m).Error; err != nil {
		return nil, errors.Wrap(err, "update admission result")
	}
	return m, nil
}

func TogglePublished(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.AdmissionResultModel, error) {
	m, err := Get(ctx, db, id)
	if err != nil {
		return nil, err
	}
	m.ResultPublished = !m.ResultPublished
	err = db.WithContext(ctx).Model(m).Update("result_published", m.ResultPublished).Error
	return m, errors.Wrap(err, "toggle admission result")
}

// PublishAll: publikasikan/tarik semua hasil satu classe + promotion.
func PublishAll(ctx context.Context, db *gorm.DB, class, promotion string, published bool) (int64, error) {
	res := db.WithContext(ctx).Model(&model.AdmissionResultModel{}).
		Where("result_class = ? AND result_promotion = ?", class, promotion).
		Update("result_published", published)
	return res.RowsAffected, errors.Wrap(res.Error, "publish admission results")
}

func Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	res := db.WithContext(ctx).Delete(&model.AdmissionResultModel{}, "result_id = ?", id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete admission result")
	}
	if res.RowsAffected == 0 {
		return helper.NotFound("Résultat introuvable")
	}
	return nil
}

// ImportNames: textarea → satu baris per élève, dalam satu transaksi.
func ImportNames(ctx context.Context, db *gorm.DB, form dto.BulkForm) (int, error) {
	form.Normalize()
	if err := helper.ValidateStruct(&form); err != nil {
		return 0, err
	}
	names := dto.ParseNames(form.Names)
	if len(names) == 0 {
		return 0, helper.NewValidationError("Aucun nom valide dans la liste.")
	}
	rows := make([]model.AdmissionResultModel, 0, len(names))
	for _, n := range names {
		rows = append(rows, model.AdmissionResultModel{
			ResultLastName:  strings.ToUpper(n[0]),
			ResultFirstName: n[1],
			ResultClass:     form.Class,
			ResultPromotion: form.Promotion,
			ResultStatus:    form.Status,
			ResultPublished: form.Published,
		})
	}
	if err := db.WithContext(ctx).CreateInBatches(&rows, importBatch).Error; err != nil {
		return 0, errors.Wrap(err, "import names")
	}
	return len(rows), nil
}

// ImportSheet: xlsx → baris valid disimpan, baris bermasalah dikembalikan.
func ImportSheet(ctx context.Context, db *gorm.DB, r io.Reader, published bool) (*ParsedSheet, error) {
	parsed, err := ParseSheet(r, published)
	if err != nil {
		return nil, err
	}
	if len(parsed.Results) == 0 {
		return parsed, helper.NewValidationError("Aucune ligne valide dans le fichier.")
	}
	if err := db.WithContext(ctx).CreateInBatches(&parsed.Results, importBatch).Error; err != nil {
		return nil, errors.Wrap(err, "import sheet")
	}
	return parsed, nil
}
