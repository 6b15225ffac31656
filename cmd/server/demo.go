package main

import (
	"bytes"
	"compress/gzip"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Student is the demo application's resource
type Student struct {
	Name      string    `json:"name" binding:"required"`
	Age       int       `json:"age"`
	Email     string    `json:"email,omitempty"`
	Password  string    `json:"password,omitempty"`
	Courses   []Course  `json:"courses,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Course is a course a student is enrolled in
type Course struct {
	Code    string  `json:"code"`
	Credits float64 `json:"credits"`
}

// studentStore keeps demo students in memory
type studentStore struct {
	mu       sync.RWMutex
	students map[string]*Student
}

func newStudentStore() *studentStore {
	return &studentStore{students: make(map[string]*Student)}
}

// registerDemoRoutes mounts the demo students API
func registerDemoRoutes(r gin.IRouter, store *studentStore) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	students := r.Group("/students")
	{
		students.GET("", store.list)
		students.POST("", store.create)
		students.POST("/stranger", func(c *gin.Context) {
			var body map[string]interface{}
			if err := c.ShouldBindJSON(&body); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, body)
		})
		students.GET("/:name", store.get)
		students.PUT("/:name", store.update)
		students.DELETE("/:name", store.delete)
	}

	r.GET("/gzip", func(c *gin.Context) {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		zw.Write([]byte(`{"message":"gzip"}`))
		zw.Close()
		c.Header("Content-Encoding", "gzip")
		c.Data(http.StatusOK, "application/json", buf.Bytes())
	})
}

func (s *studentStore) list(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Student, 0, len(s.students))
	for _, st := range s.students {
		result = append(result, st)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	if limit := c.Query("limit"); limit != "" {
		c.Header("X-Limit", limit)
	}
	c.JSON(http.StatusOK, result)
}

func (s *studentStore) create(c *gin.Context) {
	var st Student
	if err := c.ShouldBindJSON(&st); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.students[st.Name]; exists {
		c.JSON(http.StatusConflict, gin.H{"error": "Student already exists"})
		return
	}
	st.CreatedAt = time.Now().UTC()
	s.students[st.Name] = &st
	c.JSON(http.StatusCreated, st)
}

func (s *studentStore) get(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.students[c.Param("name")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *studentStore) update(c *gin.Context) {
	var st Student
	if err := c.ShouldBindJSON(&st); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.students[c.Param("name")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}
	st.Name = existing.Name
	st.CreatedAt = existing.CreatedAt
	s.students[st.Name] = &st
	c.JSON(http.StatusOK, st)
}

func (s *studentStore) delete(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := c.Param("name")
	if _, ok := s.students[name]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}
	delete(s.students, name)
	c.Status(http.StatusNoContent)
}
