package helper

import (
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	SessionUserID   = "user_id"
	SessionUserRole = "user_role"
	SessionUserName = "user_name"
	sessionFlashKey = "_flash"
)

// Sessions dipakai bersama oleh middleware auth & flash.
var Sessions = NewSessionStore(false)

func NewSessionStore(secure bool) *session.Store {
	return session.New(session.Config{
		Expiration:     8 * time.Hour,
		KeyLookup:      "cookie:schoolku_session",
		CookieHTTPOnly: true,
		CookieSecure:   secure,
		CookieSameSite: "Lax",
	})
}

type Flash struct {
	Level   string `json:"level"` // success | error | warning | info
	Message string `json:"message"`
}

// SetFlash menambah pesan flash ke session (dibaca sekali di render berikutnya).
func SetFlash(c *fiber.Ctx, level, message string) {
	sess, err := Sessions.Get(c)
	if err != nil {
		log.Printf("[WARN] flash: session get: %v", err)
		return
	}
	pushFlash(sess, level, message)
	if err := sess.Save(); err != nil {
		log.Printf("[WARN] flash: session save: %v", err)
	}
}

func pushFlash(sess *session.Session, level, message string) {
	var list []Flash
	if raw, ok := sess.Get(sessionFlashKey).(string); ok && raw != "" {
		_ = sonic.UnmarshalString(raw, &list)
	}
	list = append(list, Flash{Level: level, Message: message})
	if s, err := sonic.MarshalString(list); err == nil {
		sess.Set(sessionFlashKey, s)
	}
}

// PopFlashes mengambil & menghapus semua flash.
func PopFlashes(c *fiber.Ctx) []Flash {
	sess, err := Sessions.Get(c)
	if err != nil {
		return nil
	}
	raw, ok := sess.Get(sessionFlashKey).(string)
	if !ok || raw == "" {
		return nil
	}
	var list []Flash
	_ = sonic.UnmarshalString(raw, &list)
	sess.Delete(sessionFlashKey)
	_ = sess.Save()
	return list
}

// RedirectWithFlash: flash + redirect 303 (aman setelah POST).
func RedirectWithFlash(c *fiber.Ctx, to, level, message string) error {
	SetFlash(c, level, message)
	return c.Redirect(to, fiber.StatusSeeOther)
}

func FlashSuccess(c *fiber.Ctx, to, message string) error {
	return RedirectWithFlash(c, to, "success", message)
}

func FlashError(c *fiber.Ctx, to, message string) error {
	return RedirectWithFlash(c, to, "error", message)
}

// LogIn: regenerasi session id lalu simpan identitas user. Flash sambutan
// ditulis ke session yang sama (session lama sudah tidak valid setelah Regenerate).
func LogIn(c *fiber.Ctx, userID, role, name, welcome string) error {
	sess, err := Sessions.Get(c)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(SessionUserID, userID)
	sess.Set(SessionUserRole, role)
	sess.Set(SessionUserName, name)
	if welcome != "" {
		pushFlash(sess, "success", welcome)
	}
	return sess.Save()
}

func LogOut(c *fiber.Ctx) error {
	sess, err := Sessions.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// SessionUser membaca user_id dari session ("" jika tamu).
func SessionUser(c *fiber.Ctx) string {
	sess, err := Sessions.Get(c)
	if err != nil {
		return ""
	}
	id, _ := sess.Get(SessionUserID).(string)
	return id
}
