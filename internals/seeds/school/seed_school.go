package school

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	classDTO "schoolku_backend/internals/features/school/classes/dto"
	classModel "schoolku_backend/internals/features/school/classes/model"
	classService "schoolku_backend/internals/features/school/classes/service"
	studentDTO "schoolku_backend/internals/features/school/students/dto"
	studentModel "schoolku_backend/internals/features/school/students/model"
	studentService "schoolku_backend/internals/features/school/students/service"
	subjectDTO "schoolku_backend/internals/features/school/subjects/dto"
	subjectModel "schoolku_backend/internals/features/school/subjects/model"
	subjectService "schoolku_backend/internals/features/school/subjects/service"
	userDTO "schoolku_backend/internals/features/users/user/dto"
	userModel "schoolku_backend/internals/features/users/user/model"
	userService "schoolku_backend/internals/features/users/user/service"
)

type UserSeed struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type ClassSeed struct {
	Name         string `json:"name"`
	Level        string `json:"level"`
	AcademicYear string `json:"academic_year"`
	Capacity     int    `json:"capacity"`
	Room         string `json:"room"`
}

type SubjectSeed struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Coefficient float64 `json:"coefficient"`
}

// TeachingSeed mereferensikan kelas (nama + tahun), mapel (kode), professeur (email).
type TeachingSeed struct {
	Class        string `json:"class"`
	AcademicYear string `json:"academic_year"`
	Subject      string `json:"subject"`
	Teacher      string `json:"teacher"`
}

type StudentSeed struct {
	Matricule    string `json:"matricule"`
	LastName     string `json:"last_name"`
	FirstName    string `json:"first_name"`
	BirthDate    string `json:"birth_date"`
	BirthPlace   string `json:"birth_place"`
	Gender       string `json:"gender"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Class        string `json:"class"`
	AcademicYear string `json:"academic_year"`
	Parent       string `json:"parent"`
}

type Data struct {
	Users     []UserSeed     `json:"users"`
	Classes   []ClassSeed    `json:"classes"`
	Subjects  []SubjectSeed  `json:"subjects"`
	Teachings []TeachingSeed `json:"teachings"`
	Students  []StudentSeed  `json:"students"`
}

// Report: jumlah baris baru per jenis (baris yang sudah ada dilewati).
type Report struct {
	Users, Classes, Subjects, Teachings, Students int
}

func Load(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read seed file")
	}
	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, errors.Wrap(err, "decode seed file")
	}
	return &d, nil
}

// SeedFromJSON memuat data demo lewat service (validasi sama dengan form).
// Idempoten: email, kelas (nama + tahun), kode mapel, dan matricule yang sudah ada dilewati.
func SeedFromJSON(ctx context.Context, db *gorm.DB, path string) (*Report, error) {
	log.Println("[INFO] membaca seed:", path)
	d, err := Load(path)
	if err != nil {
		return nil, err
	}
	rep := &Report{}

	users := map[string]*userModel.UserModel{}
	for _, u := range d.Users {
		var existing userModel.UserModel
		if err := db.WithContext(ctx).Where("email = ?", u.Email).Take(&existing).Error; err == nil {
			users[existing.Email] = &existing
			continue
		}
		m, err := userService.Create(ctx, db, userDTO.UserForm{
			FullName: u.FullName, Email: u.Email, Role: u.Role, Phone: u.Phone, Password: u.Password, IsActive: true,
		})
		if err != nil {
			return rep, errors.Wrapf(err, "seed user %s", u.Email)
		}
		users[m.Email] = m
		rep.Users++
	}

	classes := map[string]*classModel.ClassModel{}
	classKey := func(name, year string) string { return name + "|" + year }
	for _, c := range d.Classes {
		var existing classModel.ClassModel
		if err := db.WithContext(ctx).Where("class_name = ? AND class_academic_year = ?", c.Name, c.AcademicYear).
			Take(&existing).Error; err == nil {
			classes[classKey(c.Name, c.AcademicYear)] = &existing
			continue
		}
		m, err := classService.Create(ctx, db, classDTO.ClassForm{
			Name: c.Name, Level: c.Level, AcademicYear: c.AcademicYear, Capacity: c.Capacity, Room: c.Room,
		})
		if err != nil {
			return rep, errors.Wrapf(err, "seed class %s", c.Name)
		}
		classes[classKey(c.Name, c.AcademicYear)] = m
		rep.Classes++
	}

	subjects := map[string]*subjectModel.SubjectModel{}
	for _, s := range d.Subjects {
		var existing subjectModel.SubjectModel
		if err := db.WithContext(ctx).Where("subject_code = ?", s.Code).Take(&existing).Error; err == nil {
			subjects[existing.SubjectCode] = &existing
			continue
		}
		m, err := subjectService.Create(ctx, db, subjectDTO.SubjectForm{
			Code: s.Code, Name: s.Name, Description: s.Description, Coefficient: s.Coefficient,
		})
		if err != nil {
			return rep, errors.Wrapf(err, "seed subject %s", s.Code)
		}
		subjects[m.SubjectCode] = m
		rep.Subjects++
	}

	for _, t := range d.Teachings {
		cls, sub, teacher := classes[classKey(t.Class, t.AcademicYear)], subjects[t.Subject], users[t.Teacher]
		if cls == nil || sub == nil || teacher == nil {
			log.Printf("[WARN] seed teaching %s/%s/%s: referensi tidak ditemukan, dilewati", t.Class, t.Subject, t.Teacher)
			continue
		}
		var n int64
		db.WithContext(ctx).Model(&subjectModel.TeachingModel{}).
			Where("teaching_class_id = ? AND teaching_subject_id = ?", cls.ClassID, sub.SubjectID).Count(&n)
		if n > 0 {
			continue
		}
		if _, err := subjectService.CreateTeaching(ctx, db, subjectDTO.TeachingForm{
			ClassID: cls.ClassID.String(), SubjectID: sub.SubjectID.String(), TeacherID: teacher.ID.String(),
		}); err != nil {
			return rep, errors.Wrapf(err, "seed teaching %s/%s", t.Class, t.Subject)
		}
		rep.Teachings++
	}

	for _, s := range d.Students {
		cls := classes[classKey(s.Class, s.AcademicYear)]
		if cls == nil {
			log.Printf("[WARN] seed élève %s %s: kelas %s tidak ditemukan, dilewati", s.LastName, s.FirstName, s.Class)
			continue
		}
		if s.Matricule != "" {
			var n int64
			db.WithContext(ctx).Model(&studentModel.StudentModel{}).Where("student_matricule = ?", s.Matricule).Count(&n)
			if n > 0 {
				continue
			}
		}
		form := studentDTO.StudentForm{
			Matricule: s.Matricule, LastName: s.LastName, FirstName: s.FirstName,
			BirthDate: s.BirthDate, BirthPlace: s.BirthPlace, Gender: s.Gender,
			Address: s.Address, Phone: s.Phone, ClassID: cls.ClassID.String(), IsActive: true,
		}
		if p := users[s.Parent]; p != nil {
			form.ParentID = p.ID.String()
		}
		if _, err := studentService.Create(ctx, db, nil, form, nil); err != nil {
			return rep, errors.Wrapf(err, "seed élève %s %s", s.LastName, s.FirstName)
		}
		rep.Students++
	}

	log.Printf("[INFO] seed selesai: %d user, %d classe, %d cours, %d enseignement, %d élève",
		rep.Users, rep.Classes, rep.Subjects, rep.Teachings, rep.Students)
	return rep, nil
}
