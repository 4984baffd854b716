package service

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"math"
	"strings"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"schoolku_backend/internals/constants"
)

// Customer: data orang tua untuk Snap.
type Customer struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// SnapRequest: satu transaksi Snap.
type SnapRequest struct {
	OrderID  string
	Amount   float64
	ItemName string
	Customer Customer
}

// Gateway membuat transaksi pembayaran online.
type Gateway interface {
	CreateSnap(req SnapRequest) (token, redirectURL string, err error)
	VerifySignature(orderID, statusCode, grossAmount, signature string) bool
}

type MidtransGateway struct {
	serverKey string
	client    snap.Client
}

// NewMidtransGateway: key kosong → nil (paiement en ligne nonaktif).
func NewMidtransGateway(serverKey string, production bool) *MidtransGateway {
	if strings.TrimSpace(serverKey) == "" {
		return nil
	}
	g := &MidtransGateway{serverKey: serverKey}
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	g.client.New(serverKey, env)
	return g
}

func (g *MidtransGateway) CreateSnap(r SnapRequest) (string, string, error) {
	if r.Amount <= 0 {
		return "", "", errors.New("invalid amount")
	}
	if r.OrderID == "" {
		return "", "", errors.New("order id is required")
	}
	gross := int64(math.Round(r.Amount))
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  r.OrderID,
			GrossAmt: gross,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: r.Customer.FirstName,
			LName: r.Customer.LastName,
			Email: r.Customer.Email,
			Phone: r.Customer.Phone,
		},
		Items: &[]midtrans.ItemDetails{{
			ID:    r.OrderID,
			Price: gross,
			Qty:   1,
			Name:  truncate(defaultString(r.ItemName, "Frais scolaires"), 50),
		}},
	}
	resp, err := g.client.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}

// VerifySignature: SHA512(order_id + status_code + gross_amount + server_key).
func (g *MidtransGateway) VerifySignature(orderID, statusCode, grossAmount, signature string) bool {
	return SignatureFor(orderID, statusCode, grossAmount, g.serverKey) == strings.ToLower(signature)
}

func SignatureFor(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// MapTransactionStatus: status Midtrans → status paiement; "" = tidak diubah.
func MapTransactionStatus(transactionStatus, fraudStatus string) string {
	switch transactionStatus {
	case "capture":
		if fraudStatus == "challenge" {
			return constants.PaymentPending
		}
		return constants.PaymentPaid
	case "settlement":
		return constants.PaymentPaid
	case "pending":
		return constants.PaymentPending
	case "deny", "cancel", "expire", "failure":
		return constants.PaymentFailed
	}
	return ""
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n])
}

func defaultString(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// GatewayFromConfig: nil jika MIDTRANS_SERVER_KEY kosong.
func GatewayFromConfig(serverKey string, production bool) Gateway {
	if g := NewMidtransGateway(serverKey, production); g != nil {
		return g
	}
	return nil
}
