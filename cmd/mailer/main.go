package main

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"sync"
	"time"

	"tax-backoffice-backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gopkg.in/gomail.v2"
)

var mailer *gomail.Dialer

// initializeMailer sets up the SMTP dialer from environment variables.
func initializeMailer() {
	mailHost := config.GetEnv("SMTP_HOST")
	mailPort := config.GetEnv("SMTP_PORT")
	mailUser := config.GetEnv("SMTP_USER")
	mailPassword := config.GetEnv("SMTP_PASSWORD")

	port, err := strconv.Atoi(mailPort)
	if err != nil {
		config.Logger.Error("Invalid SMTP_PORT value, defaulting to port 25",
			zap.String("provided_port", mailPort),
			zap.Error(err),
		)
		port = 25
	}

	mailer = gomail.NewDialer(mailHost, port, mailUser, mailPassword)
	config.Logger.Info("Mailer initialized successfully")
}

const verificationTemplate = `<html>
	<head>
		<meta charset="utf-8">
		<title>Your Verification Code</title>
	</head>
	<body>
		<p>Hello,</p>
		<p>Your verification code is: <strong>{{.Code}}</strong></p>
		<p>Enter this code to verify your email address. If you did not request this, please ignore this email.</p>
	</body>
</html>`

var verificationTmpl = template.Must(template.New("verification").Parse(verificationTemplate))

// sendVerificationEmail renders the fixed template and sends it through
// the SMTP relay. The send is synchronous; the caller gets the error.
func sendVerificationEmail(email, code string) error {
	if mailer == nil {
		return fmt.Errorf("mailer is not initialized")
	}

	var body bytes.Buffer
	if err := verificationTmpl.Execute(&body, struct{ Code string }{Code: code}); err != nil {
		return fmt.Errorf("failed to render verification email: %v", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", config.GetEnv("SMTP_FROM"))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your verification code")
	m.SetBody("text/html", body.String())

	return mailer.DialAndSend(m)
}

// recipientLimiters throttles sends per recipient so a burst of requests
// for the same address cannot flood the relay.
type recipientLimiters struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newRecipientLimiters() *recipientLimiters {
	return &recipientLimiters{limiters: make(map[string]*rate.Limiter)}
}

func (rl *recipientLimiters) allow(email string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.limiters[email]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(30*time.Second), 2)
		rl.limiters[email] = limiter
	}
	return limiter.Allow()
}

type sendVerificationRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func main() {
	config.InitLogger()

	if err := godotenv.Load(".env"); err != nil {
		config.Logger.Warn("No .env file found, relying on process environment")
	}

	initializeMailer()

	limiters := newRecipientLimiters()

	app := fiber.New()

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	app.Post("/api/send-verification", func(c *fiber.Ctx) error {
		var req sendVerificationRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid request body",
			})
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" || req.Code == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "email and code are required",
			})
		}

		if !limiters.allow(email) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Too many verification emails requested for this address",
			})
		}

		if err := sendVerificationEmail(email, req.Code); err != nil {
			config.Logger.Error("Failed to send verification email",
				zap.String("to_email", email),
				zap.Error(err),
			)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Failed to send verification email",
			})
		}

		config.Logger.Info("Verification email sent", zap.String("to_email", email))
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": true,
			"message": "Verification email sent",
		})
	})

	port := config.GetEnvOrDefault("MAILER_PORT", "8081")
	config.Logger.Info("Mailer service starting", zap.String("port", port))
	config.Logger.Fatal("Mailer service failed", zap.String("port", port), zap.Error(app.Listen(":"+port)))
}
