package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/naomili-code/scamalyst/internal/domain/event"
	"github.com/naomili-code/scamalyst/internal/infrastructure/messaging"
	"github.com/naomili-code/scamalyst/pkg/auth"
	"github.com/naomili-code/scamalyst/pkg/events"
	pkgkafka "github.com/naomili-code/scamalyst/pkg/kafka"
	"github.com/naomili-code/scamalyst/pkg/tlsutil"
)

// watch tails the analysis topic and prints one line per event.
func (c *cli) watch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	topic := fs.String("topic", c.cfg.Kafka.Topic, "topic to consume")
	group := fs.String("group", c.cfg.Kafka.ConsumerGroup, "consumer group")
	highRiskOnly := fs.Bool("high-risk", false, "only print high risk detections")
	if err := fs.Parse(args); err != nil {
		return err
	}

	kafkaCfg := c.cfg.Kafka.Client()
	kafkaCfg.ConsumerGroup = *group

	consumer, err := pkgkafka.NewConsumer(kafkaCfg, *topic, messaging.EnvelopeHandler(func(_ context.Context, env events.Envelope) error {
		return c.printEnvelope(env, *highRiskOnly)
	}), c.logger)
	if err != nil {
		return err
	}
	defer consumer.Close()

	return consumer.Start(ctx)
}

func (c *cli) printEnvelope(env events.Envelope, highRiskOnly bool) error {
	if highRiskOnly && env.Type != event.EventTypeHighRiskDetected {
		return nil
	}
	if c.asJSON {
		return c.printJSON(env)
	}
	_, err := fmt.Fprintf(c.stdout, "%s  %-28s  %s  %s\n",
		env.OccurredAt.Format(time.RFC3339), env.Type, env.AggregateID, env.Payload)
	return err
}

// token signs an API token with JWT_SECRET or an RSA private key.
func (c *cli) token(args []string) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	clientID := fs.String("client", "", "client id placed in the token subject")
	roles := fs.String("roles", auth.RoleAnalyst, "comma-separated roles (admin, analyst, inference)")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	secret := fs.String("secret", c.cfg.Auth.JWTSecret, "HMAC secret (defaults to JWT_SECRET)")
	privateKey := fs.String("private-key", "", "PEM RSA private key file; overrides -secret")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := auth.JWTConfig{Secret: *secret, Issuer: c.cfg.Auth.Issuer, Expiration: *ttl}
	if *privateKey != "" {
		pem, err := auth.LoadKeyFromFile(*privateKey)
		if err != nil {
			return err
		}
		cfg.PrivateKeyPEM = string(pem)
	}
	svc, err := auth.NewJWTService(cfg)
	if err != nil {
		return err
	}

	var roleList []string
	for _, r := range strings.Split(*roles, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roleList = append(roleList, r)
		}
	}
	token, err := svc.GenerateToken(*clientID, roleList)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.stdout, token)
	return err
}

// certs writes a development CA and server certificate.
func (c *cli) certs(args []string) error {
	fs := flag.NewFlagSet("certs", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	out := fs.String("out", "certs", "output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	hosts := fs.Args()
	if len(hosts) == 0 {
		hosts = []string{"localhost", "127.0.0.1"}
	}
	if err := tlsutil.GenerateSelfSignedCert(hosts, *out); err != nil {
		return err
	}
	_, err := fmt.Fprintf(c.stdout, "wrote %s and %s\n",
		filepath.Join(*out, "server.pem"), filepath.Join(*out, "server-key.pem"))
	return err
}

// keygen writes an RSA key pair for RS256 tokens.
func (c *cli) keygen(args []string) error {
	fs := flag.NewFlagSet("keygen", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	out := fs.String("out", ".", "output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	private, public, err := auth.GenerateKeyPair()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", *out, err)
	}
	privatePath := filepath.Join(*out, "jwt-private.pem")
	publicPath := filepath.Join(*out, "jwt-public.pem")
	if err := os.WriteFile(privatePath, private, 0o600); err != nil {
		return fmt.Errorf("write private key: %w", err)
	}
	if err := os.WriteFile(publicPath, public, 0o644); err != nil { //nolint:gosec // public key
		return fmt.Errorf("write public key: %w", err)
	}
	_, err = fmt.Fprintf(c.stdout, "wrote %s and %s\n", privatePath, publicPath)
	return err
}
