package handlers

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	socketio "github.com/googollee/go-socket.io"
	"github.com/googollee/go-socket.io/engineio"
	"github.com/googollee/go-socket.io/engineio/transport"
	"github.com/googollee/go-socket.io/engineio/transport/polling"
	"github.com/googollee/go-socket.io/engineio/transport/websocket"
	"github.com/learnhub/learnhub-backend/internal/database"
	"github.com/learnhub/learnhub-backend/internal/models"
	"github.com/learnhub/learnhub-backend/internal/services"
	"github.com/learnhub/learnhub-backend/pkg/logger"
	"github.com/learnhub/learnhub-backend/pkg/utils"
)

var SocketServer *socketio.Server

// Connected users: userId -> socketId
var (
	onlineUsers   = make(map[string]string)
	onlineUsersMu sync.RWMutex
)

func courseRoom(courseID string) string {
	return "course:" + courseID
}

// IsUserOnline checks if a user has a live socket
func IsUserOnline(userId string) bool {
	onlineUsersMu.RLock()
	defer onlineUsersMu.RUnlock()
	_, exists := onlineUsers[userId]
	return exists
}

// PushNotificationSnapshot re-pushes the user's full newest-first
// notification list and unread count to their room. Called after every
// change to the underlying set; consumers receive complete snapshots,
// not deltas. Safe to call when no socket server is running.
func PushNotificationSnapshot(userID string) {
	if SocketServer == nil {
		return
	}

	var notifications []models.Notification
	if err := database.DB.Where("recipient_id = ?", userID).
		Order("created_at desc").
		Limit(50).
		Find(&notifications).Error; err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to build notification snapshot")
		return
	}

	var unread int64
	database.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", userID, false).
		Count(&unread)

	SocketServer.BroadcastToRoom("/", userID, "notifications_snapshot", notifications)
	SocketServer.BroadcastToRoom("/", userID, "unread_count", unread)
}

// PushCourseRatings re-pushes the full ratings list and recomputed stats
// for a course to everyone subscribed to its room.
func PushCourseRatings(courseID string) {
	if SocketServer == nil {
		return
	}

	ratings, err := services.CourseRatings(courseID, 50)
	if err != nil {
		logger.Error().Err(err).Str("course_id", courseID).Msg("Failed to build ratings snapshot")
		return
	}
	stats, err := services.CourseRatingStats(courseID)
	if err != nil {
		logger.Error().Err(err).Str("course_id", courseID).Msg("Failed to compute rating stats")
		return
	}

	room := courseRoom(courseID)
	SocketServer.BroadcastToRoom("/", room, "ratings_snapshot", ratings)
	SocketServer.BroadcastToRoom("/", room, "rating_stats", stats)
}

func InitSocketServer() *socketio.Server {
	server := socketio.NewServer(&engineio.Options{
		Transports: []transport.Transport{
			&websocket.Transport{
				CheckOrigin: func(r *http.Request) bool { return true },
			},
			&polling.Transport{
				CheckOrigin: func(r *http.Request) bool { return true },
			},
		},
	})

	server.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext("")
		url := s.URL()

		token := url.Query().Get("token")
		if token == "" {
			token = url.Query().Get("auth_token")
		}
		if token == "" {
			logger.Warn().Str("socket_id", s.ID()).Msg("Socket connection rejected: no token")
			return fmt.Errorf("authentication required")
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			logger.Warn().Str("socket_id", s.ID()).Msg("Socket connection rejected: invalid token")
			return fmt.Errorf("invalid token")
		}

		userId := claims.UserID
		s.SetContext(userId)

		onlineUsersMu.Lock()
		onlineUsers[userId] = s.ID()
		onlineUsersMu.Unlock()

		// Personal room: notification snapshots land here
		s.Join(userId)

		// Seed the client with the current state
		go PushNotificationSnapshot(userId)

		return nil
	})

	// Live rating subscriptions per course
	server.OnEvent("/", "join_course", func(s socketio.Conn, courseID string) {
		s.Join(courseRoom(courseID))
	})

	server.OnEvent("/", "leave_course", func(s socketio.Conn, courseID string) {
		s.Leave(courseRoom(courseID))
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		onlineUsersMu.Lock()
		for userId, socketId := range onlineUsers {
			if socketId == s.ID() {
				delete(onlineUsers, userId)
				break
			}
		}
		onlineUsersMu.Unlock()
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		logger.Error().Err(e).Msg("Socket error")
	})

	go server.Serve()
	SocketServer = server
	return server
}

// SocketHandler wraps the socket.io server for gin
func SocketHandler(server *socketio.Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		server.ServeHTTP(c.Writer, c.Request)
	}
}
