// loghive-sim generates realistic multi-tenant log traffic against a
// running loghive server. It reads the same LOGHIVE_AUTH__CREDENTIALS the
// server uses, so every request carries a valid bearer token.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/loghive/loghive/internal/auth"
	"github.com/loghive/loghive/internal/model"
)

type sample struct {
	severity string
	message  string
}

// Per-tenant message pools, weighted the way each backend actually logs.
var tenantSamples = map[string][]sample{
	"pagos": {
		{model.SeverityInfo, "payment processed - amount: $2500"},
		{model.SeverityInfo, "refund started for order #12345"},
		{model.SeverityError, "card declined - insufficient funds"},
		{model.SeverityError, "payment rejected - card expired"},
		{model.SeverityWarning, "payment gateway timeout - stripe"},
		{model.SeverityCritical, "payment system offline"},
		{model.SeverityDebug, "validating card details"},
	},
	"ventas": {
		{model.SeverityInfo, "new sale recorded - product: laptop"},
		{model.SeverityInfo, "discount applied: black friday 20%"},
		{model.SeverityWarning, "low stock detected on product 456"},
		{model.SeverityWarning, "cart abandoned after 30 minutes"},
		{model.SeverityError, "sale cancelled by customer"},
		{model.SeverityDebug, "computing sale totals"},
	},
	"auth": {
		{model.SeverityInfo, "user logged in - id: user_789"},
		{model.SeverityInfo, "session token renewed"},
		{model.SeverityWarning, "failed login attempt - wrong password"},
		{model.SeverityError, "account locked after repeated failures"},
		{model.SeverityCritical, "suspicious access blocked - ip: 192.168.1.100"},
	},
	"notificaciones": {
		{model.SeverityInfo, "email sent - order confirmation"},
		{model.SeverityInfo, "push notification sent - 1500 users"},
		{model.SeverityWarning, "email bounced - mailbox full"},
		{model.SeverityError, "sms failed - invalid number"},
		{model.SeverityCritical, "notification service unavailable"},
	},
	"inventario": {
		{model.SeverityInfo, "stock updated - product restocked (+50 units)"},
		{model.SeverityInfo, "warehouse transfer completed"},
		{model.SeverityWarning, "stock critical on product 321"},
		{model.SeverityError, "inventory sync with central warehouse failed"},
		{model.SeverityCritical, "inventory count discrepancy detected"},
	},
}

type createLogBody struct {
	Tenant    string    `json:"tenant"`
	EventTime time.Time `json:"event_time"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
}

func main() {
	url := flag.String("url", "http://127.0.0.1:8080/logs", "log ingest endpoint")
	minWait := flag.Duration("min-wait", 100*time.Millisecond, "minimum pause between logs")
	maxWait := flag.Duration("max-wait", 500*time.Millisecond, "maximum pause between logs")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	_ = godotenv.Load()
	creds, err := auth.ParseCredentials(os.Getenv("LOGHIVE_AUTH__CREDENTIALS"))
	if err != nil {
		logger.Fatal().Err(err).Msg("LOGHIVE_AUTH__CREDENTIALS not usable")
	}

	tenants := make([]string, 0, len(creds))
	for tenant := range creds {
		tenants = append(tenants, tenant)
	}
	logger.Info().Int("tenants", len(tenants)).Str("url", *url).Msg("starting traffic simulation")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := &http.Client{Timeout: 5 * time.Second}
	for {
		sendOne(ctx, client, logger, *url, tenants, creds)

		wait := *minWait + time.Duration(rand.Int63n(int64(*maxWait-*minWait)+1))
		select {
		case <-ctx.Done():
			logger.Info().Msg("simulation stopped")
			return
		case <-time.After(wait):
		}
	}
}

func sendOne(ctx context.Context, client *http.Client, logger zerolog.Logger, url string, tenants []string, creds map[string]string) {
	tenant := tenants[rand.Intn(len(tenants))]
	pool, ok := tenantSamples[tenant]
	if !ok || len(pool) == 0 {
		pool = []sample{{model.SeverityInfo, "heartbeat"}}
	}
	s := pool[rand.Intn(len(pool))]

	body, _ := json.Marshal(createLogBody{
		Tenant:    tenant,
		EventTime: time.Now().UTC(),
		Severity:  s.severity,
		Message:   s.message,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		logger.Error().Err(err).Msg("build request")
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+creds[tenant])

	resp, err := client.Do(req)
	if err != nil {
		logger.Error().Err(err).Msg("server not responding")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		logger.Error().Int("status", resp.StatusCode).Str("tenant", tenant).Msg("log rejected")
		return
	}
	logger.Info().Str("tenant", tenant).Str("severity", s.severity).Msg(s.message)
}
