package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"time"

	"github.com/DODOEX/b64huff/internal/common"
	"github.com/DODOEX/b64huff/utils"
	"github.com/DODOEX/b64huff/utils/config"
	"github.com/DODOEX/b64huff/utils/helpers"
	"github.com/rs/zerolog"
	amqplib "github.com/streadway/amqp"
) //导入mq包

type Amqp struct {
	logger   zerolog.Logger
	config   *config.Conf
	exchange string
	Conn     *amqplib.Connection
	Channel  *amqplib.Channel
}

// 创建结构体实例
func NewRabbitMQ(config *config.Conf, logger zerolog.Logger) *Amqp {
	amqp := Amqp{
		logger:   logger.With().Str("name", "amqp").Logger(),
		config:   config,
		exchange: config.String("amqp.exchange", "b64huff.job.topic"),
	}

	return &amqp
}

func (a *Amqp) Enabled() bool {
	return a.config.Bool("amqp.enable", false)
}

func (a *Amqp) Connect(ctx context.Context) (err error) {
	connectionTimeout := a.config.Duration("amqp.connection-timeout", 30*time.Second)

	a.Conn, err = amqplib.DialConfig(a.config.String("amqp.url"), amqplib.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial: func(network, addr string) (conn net.Conn, err error) {
			conn, err = net.DialTimeout(network, addr, connectionTimeout)
			if err != nil {
				return nil, err
			}

			// Heartbeating hasn't started yet, don't stall forever on a dead server.
			if err := conn.SetDeadline(time.Now().Add(connectionTimeout)); err != nil {
				return nil, err
			}

			return conn, nil
		},
	})
	if err != nil {
		return err
	}

	//创建Channel
	a.Channel, err = a.Conn.Channel()
	if err != nil {
		return err
	}

	err = a.Channel.ExchangeDeclare(
		a.exchange,
		a.config.String("amqp.exchange-type", "topic"),
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		a.logger.Warn().Msgf("%s:%s\n", "创建交换机失败", err)
		return err
	}

	return nil
}

// Publish sends a finished job to the exchange under "job.<direction>.<status>".
func (a *Amqp) Publish(profile *common.JobProfile) error {
	if a == nil || a.Conn == nil || a.Channel == nil {
		return errors.New("amqp is not connected")
	}
	if a.Conn.IsClosed() {
		return errors.New("amqp connection is closed")
	}

	body, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	key := helpers.Concat("job.", string(profile.Direction), ".", string(profile.Status))
	err = a.Channel.Publish(a.exchange, key, false, false, amqplib.Publishing{
		ContentType: "application/json",
		MessageId:   profile.ID,
		Body:        body,
	})
	if err != nil {
		return err
	}

	utils.TotalAmqpMessages.WithLabelValues(string(profile.Direction)).Inc()
	return nil
}

// 释放资源
func (a *Amqp) Close() error {
	if a == nil {
		return nil
	}
	if a.Channel != nil {
		if err := a.Channel.Close(); err != nil {
			return err
		}
	}
	if a.Conn != nil {
		if err := a.Conn.Close(); err != nil {
			return err
		}
	}
	return nil
}
