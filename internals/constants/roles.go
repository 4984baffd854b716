package constants

import "fmt"

const (
	RoleAdmin    = "admin"
	RoleDirector = "directeur"
	RoleTeacher  = "professeur"
	RoleParent   = "parent"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess   = "Seul un administrateur peut accéder à %s."
	ErrOnlyStaffCanAccess    = "Seule la direction peut accéder à %s."
	ErrOnlyTeachersCanAccess = "Accès réservé au personnel enseignant pour %s."
)

func RoleErrorAdmin(feature string) string   { return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature) }
func RoleErrorStaff(feature string) string   { return fmt.Sprintf(ErrOnlyStaffCanAccess, feature) }
func RoleErrorTeacher(feature string) string { return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature) }

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{RoleAdmin, RoleDirector, RoleTeacher, RoleParent}

	AdminOnly = []string{RoleAdmin}

	// direction: admin + directeur
	StaffRoles = []string{RoleAdmin, RoleDirector}

	// saisie notes / présences
	TeachingRoles = []string{RoleAdmin, RoleDirector, RoleTeacher}
)

var roleLabels = map[string]string{
	RoleAdmin:    "Administrateur",
	RoleDirector: "Directeur",
	RoleTeacher:  "Professeur",
	RoleParent:   "Parent",
}

func RoleLabel(role string) string {
	if l, ok := roleLabels[role]; ok {
		return l
	}
	return role
}

func IsRole(role string) bool {
	_, ok := roleLabels[role]
	return ok
}

// HasRole: role ada di daftar roles.
func HasRole(role string, roles ...string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
