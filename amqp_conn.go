package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/Azure/go-amqp"
	"go.uber.org/zap"
)

type AMQPConnOpts struct {
	socketAddr string

	sendQueue string
	recvQueue string

	username string
	password string
}

func newAMQPConnOpts(cfg AMQPConfig) *AMQPConnOpts {
	return &AMQPConnOpts{
		socketAddr: cfg.Addr,
		username:   cfg.User,
		password:   cfg.Pass,
	}
}

type AMQPConn struct {
	client   *amqp.Client
	sender   *amqp.Sender
	receiver *amqp.Receiver
}

func newAMQPConn(opts *AMQPConnOpts) (conn *AMQPConn, err error) {
	conn = &AMQPConn{}

	clientOpts := []amqp.ConnOption{
		amqp.ConnSASLPlain(opts.username, opts.password),
	}
	if strings.HasPrefix(opts.socketAddr, "amqps://") {
		// #nosec G402 - brokers used for ordmap transfers are usually local test brokers with self-signed certificates
		clientOpts = append(clientOpts, amqp.ConnTLSConfig(&tls.Config{
			InsecureSkipVerify: true,
		}))
	}

	conn.client, err = amqp.Dial(opts.socketAddr, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("Dialing AMQP server: %w", err)
	}

	if opts.sendQueue != "" {
		sendSession, err := conn.client.NewSession()
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("Creating AMQP sender session: %w", err)
		}
		conn.sender, err = sendSession.NewSender(
			amqp.LinkTargetAddress(opts.sendQueue),
		)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("Creating sender link: %w", err)
		}
	}

	if opts.recvQueue != "" {
		recvSession, err := conn.client.NewSession()
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("Creating AMQP receive session: %w", err)
		}
		conn.receiver, err = recvSession.NewReceiver(
			amqp.LinkSourceAddress(opts.recvQueue),
			amqp.LinkCredit(10),
		)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("Creating receiver link: %w", err)
		}
	}

	return conn, nil
}

func (conn *AMQPConn) Close() error {
	if conn.sender != nil {
		if err := conn.sender.Close(context.Background()); err != nil {
			zap.L().Warn("unable to close sender amqp link", zap.Error(err))
		}
	}
	if conn.receiver != nil {
		if err := conn.receiver.Close(context.Background()); err != nil {
			zap.L().Warn("unable to close receiver amqp link", zap.Error(err))
		}
	}
	return conn.client.Close()
}
