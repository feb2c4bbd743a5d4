package ws

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Connection is one browser tab
type Connection struct {
	ID string

	conn    *websocket.Conn
	send    chan []byte
	gateway *Gateway
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(c.gateway.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.gateway.config.WriteTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error().Err(err).Str("connection_id", c.ID).Msg("Failed to write message")
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.gateway.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug().Err(err).Str("connection_id", c.ID).Msg("Failed to send ping")
				return
			}
		}
	}
}

func (c *Connection) readPump() {
	defer func() {
		c.gateway.unregister(c)
		c.conn.Close()
		c.gateway.disconnected(c)

		log.Info().Str("connection_id", c.ID).Msg("Websocket connection closed")
	}()

	c.conn.SetReadLimit(c.gateway.config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.gateway.config.ReadTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.gateway.config.ReadTimeout))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("connection_id", c.ID).Msg("Unexpected websocket close")
			}
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(c.gateway.config.ReadTimeout))

		intent, err := decodeIntent(message)
		if err != nil {
			log.Debug().Err(err).Str("connection_id", c.ID).Msg("Dropping malformed message")
			continue
		}
		c.gateway.handle(c, intent)
	}
}
