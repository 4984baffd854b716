package constants

// Inscriptions
const (
	AdmissionPending   = "en_attente"
	AdmissionApproved  = "approuvee"
	AdmissionRejected  = "rejetee"
	AdmissionCompleted = "completee"
)

var AdmissionStatuses = []string{AdmissionPending, AdmissionApproved, AdmissionRejected, AdmissionCompleted}

// Doléances
const (
	ComplaintPending  = "en_attente"
	ComplaintOngoing  = "en_cours"
	ComplaintResolved = "resolu"
	ComplaintRejected = "rejete"
)

var ComplaintStatuses = []string{ComplaintPending, ComplaintOngoing, ComplaintResolved, ComplaintRejected}

// Paiements
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

const (
	MethodCash     = "especes"
	MethodCheque   = "cheque"
	MethodTransfer = "virement"
	MethodOnline   = "en_ligne"
)

var PaymentMethods = []string{MethodCash, MethodCheque, MethodTransfer, MethodOnline}

var FeeTypes = []string{"scolarite", "inscription", "uniforme", "transport", "cantine", "autre"}

// Événements
var EventTypes = []string{"academique", "sportif", "culturel", "religieux", "administratif", "autre"}

// Articles
var ArticleCategories = []string{"vie-scolaire", "annonces", "culture", "celebrations"}

// Documents
var DocumentTypes = []string{"bulletin", "certificat", "reglement", "circulaire", "autre"}

var statusLabels = map[string]string{
	"en_attente": "En attente",
	"approuvee":  "Approuvée",
	"rejetee":    "Rejetée",
	"completee":  "Complétée",

	"en_cours": "En cours",
	"resolu":   "Résolu",
	"rejete":   "Rejeté",

	"pending": "En attente",
	"paid":    "Payé",
	"failed":  "Échoué",

	"especes":  "Espèces",
	"cheque":   "Chèque",
	"virement": "Virement",
	"en_ligne": "En ligne",

	"scolarite":   "Frais de scolarité",
	"inscription": "Frais d'inscription",
	"uniforme":    "Uniforme",
	"transport":   "Transport",
	"cantine":     "Cantine",
	"autre":       "Autre",

	"academique":    "Académique",
	"sportif":       "Sportif",
	"culturel":      "Culturel",
	"religieux":     "Religieux",
	"administratif": "Administratif",

	"vie-scolaire": "Vie scolaire",
	"annonces":     "Annonces",
	"culture":      "Culture",
	"celebrations": "Célébrations",

	"bulletin":   "Bulletin",
	"certificat": "Certificat",
	"reglement":  "Règlement",
	"circulaire": "Circulaire",

	"admis":   "Admis",
	"ajourne": "Ajourné",
}

// Label: kode → teks tampilan (status, méthode, type).
func Label(code string) string {
	if l, ok := statusLabels[code]; ok {
		return l
	}
	return code
}

// In: s ada di list.
func In(s string, list []string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
