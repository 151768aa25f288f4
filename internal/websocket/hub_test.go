package websocket

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"backoffice/internal/service"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedTokens struct{}

func (fixedTokens) ParseToken(token string) (string, string, bool) {
	return "user-1", "manager", token == "good"
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestPublish_DropsWhenQueueFull(t *testing.T) {
	hub := NewHub(quietLogger())
	for i := 0; i < broadcastBuffer+10; i++ {
		hub.Publish(service.Event{Type: service.EventProjectStatusChanged, ProjectCode: "J26001"})
	}
	assert.Len(t, hub.broadcast, broadcastBuffer)
}

func TestServeWs_DeliversEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub(quietLogger())
	go hub.Run()
	defer hub.Stop()

	r := gin.New()
	r.GET("/ws", func(c *gin.Context) { ServeWs(hub, c, fixedTokens{}) })
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token="
	_, resp, err := gorillaws.DefaultDialer.Dial(url+"bad", nil)
	require.Error(t, err)
	if resp != nil {
		assert.Equal(t, 401, resp.StatusCode)
	}

	conn, _, err := gorillaws.DefaultDialer.Dial(url+"good", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish(service.Event{Type: service.EventProjectCompleted, ProjectCode: "J26002"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var got service.Event
	require.NoError(t, json.Unmarshal(msg, &got))
	assert.Equal(t, service.EventProjectCompleted, got.Type)
	assert.Equal(t, "J26002", got.ProjectCode)
}
