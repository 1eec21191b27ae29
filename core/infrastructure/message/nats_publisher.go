package message

import (
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"

	"riichi/common/config"
	"riichi/common/log"
)

var ErrNotConnected = errors.New("nats 未连接")

// NatsPublisher 把牌桌事件发布到 <subject>.<gameID>
type NatsPublisher struct {
	subject string
	conn    *nats.Conn
}

func NewNatsPublisher(conf config.NatsConfig) (*NatsPublisher, error) {
	log.Info("nats 正在连接, url:%s", conf.URL)
	conn, err := nats.Connect(conf.URL, nats.Name("riichi-engine"))
	if err != nil {
		return nil, fmt.Errorf("nats 连接错误: %w", err)
	}
	return &NatsPublisher{subject: conf.Subject, conn: conn}, nil
}

// NewNatsPublisherWithConn 复用外部创建的连接
func NewNatsPublisherWithConn(conn *nats.Conn, subject string) *NatsPublisher {
	return &NatsPublisher{subject: subject, conn: conn}
}

func (p *NatsPublisher) Subject(gameID string) string {
	return p.subject + "." + gameID
}

func (p *NatsPublisher) IsConnected() bool {
	return p.conn != nil && p.conn.IsConnected()
}

func (p *NatsPublisher) Publish(gameID string, data []byte) error {
	if !p.IsConnected() {
		return ErrNotConnected
	}
	return p.conn.Publish(p.Subject(gameID), data)
}

// Close 先把缓冲中的消息发完
func (p *NatsPublisher) Close() error {
	if p.conn == nil {
		return nil
	}
	if err := p.conn.Drain(); err != nil {
		log.Warn("nats drain 出错: %v", err)
		p.conn.Close()
		return err
	}
	log.Info("nats 连接已关闭")
	return nil
}
