// Package chatbot answers student questions, either directly from
// academic records or by retrieval-augmented generation over uploaded
// course materials.
package chatbot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"campus/chatbot/genai"
	"campus/chatbot/vectorstore"
	"campus/models"

	"gorm.io/gorm"
)

// Fixed user-facing messages. Tests pin these exactly.
const (
	msgUnavailable      = "Chatbot is currently unavailable. Please try again later."
	msgNoContent        = "You are not enrolled in any courses with available content."
	msgGenericError     = "Something went wrong while processing your question."
	msgNoGrades         = "No grades found."
	msgNoCourses        = "No courses found."
	msgNotEnrolled      = "You are not enrolled in any courses, so there are no assignments to show."
	msgNoAssignments    = "No upcoming assignments found for your enrolled courses."
	msgFallbackAnswer   = "I cannot find that information in the provided course materials."
	gradesHeader        = "Here are your recent grades:\n"
	assignmentsHeader   = "Upcoming assignments:\n"
	enrollmentsHeader   = "You are enrolled in:\n"
	dueDateLayout       = "2006-01-02 15:04"
	maxAcademicListings = 5
)

const contentPrompt = `You are an assistant helping a student. Use ONLY the following context from course materials to answer.
If not found, say: "I cannot find that information in the provided course materials for your enrolled courses."

Context:
%s

Question: %s

Answer:`

// intent classifies a query by first-match keyword containment, in
// priority order. Once an academic keyword matches, that sub-path's
// answer is final; retrieval is never attempted as a fallback.
type intent int

const (
	intentGrades intent = iota
	intentAssignments
	intentEnrollments
	intentContent
)

func routeIntent(query string) intent {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "grade"):
		return intentGrades
	case strings.Contains(q, "assignment") || strings.Contains(q, "due"):
		return intentAssignments
	case strings.Contains(q, "course") || strings.Contains(q, "enrolled"):
		return intentEnrollments
	default:
		return intentContent
	}
}

// Service is the chatbot's explicitly constructed context: database
// handle, generative AI client and vector index, built once at startup
// and passed by reference. The genai client and store are nil when no
// API key is configured; only the content path degrades in that case.
type Service struct {
	db    *gorm.DB
	genai *genai.Client
	store vectorstore.Store
	topK  int
}

func NewService(db *gorm.DB, client *genai.Client, store vectorstore.Store, topK int) *Service {
	if topK <= 0 {
		topK = 4
	}
	return &Service{db: db, genai: client, store: store, topK: topK}
}

// Answer resolves a student query. For retrieval-backed answers the
// retrieved chunk texts are returned alongside, for offline answer
// evaluation; they are never shown to the student.
func (s *Service) Answer(ctx context.Context, studentID uint, query string) (string, []string) {
	switch routeIntent(query) {
	case intentGrades:
		return s.gradesAnswer(studentID), nil
	case intentAssignments:
		return s.assignmentsAnswer(studentID), nil
	case intentEnrollments:
		return s.enrollmentsAnswer(studentID), nil
	default:
		return s.contentAnswer(ctx, studentID, query)
	}
}

// gradesAnswer lists the student's five most recent grades.
func (s *Service) gradesAnswer(studentID uint) string {
	var grades []models.Grade
	err := s.db.
		Where("student_id = ? AND is_deleted = ?", studentID, false).
		Preload("Assignment").
		Preload("Assignment.Course").
		Order("created_at desc").
		Limit(maxAcademicListings).
		Find(&grades).Error
	if err != nil {
		log.Printf("Chatbot error fetching grades for user %d: %v", studentID, err)
		return msgGenericError
	}
	if len(grades) == 0 {
		return msgNoGrades
	}

	lines := make([]string, 0, len(grades))
	for _, g := range grades {
		score := "Not Graded"
		if g.Score != nil {
			score = fmt.Sprintf("%s/%d", strconv.FormatFloat(*g.Score, 'f', -1, 64), g.Assignment.TotalPoints)
		}
		lines = append(lines, fmt.Sprintf("- %s: %s - %s", g.Assignment.Course.Code, g.Assignment.Title, score))
	}
	return gradesHeader + strings.Join(lines, "\n")
}

// assignmentsAnswer lists the five next-due assignments across the
// student's enrolled courses.
func (s *Service) assignmentsAnswer(studentID uint) string {
	courseIDs, err := s.enrolledCourseIDs(studentID)
	if err != nil {
		log.Printf("Chatbot error fetching enrollments for user %d: %v", studentID, err)
		return msgGenericError
	}
	if len(courseIDs) == 0 {
		return msgNotEnrolled
	}

	var assignments []models.Assignment
	err = s.db.
		Where("course_id IN ? AND is_deleted = ?", courseIDs, false).
		Preload("Course").
		Order("due_date asc").
		Limit(maxAcademicListings).
		Find(&assignments).Error
	if err != nil {
		log.Printf("Chatbot error fetching assignments for user %d: %v", studentID, err)
		return msgGenericError
	}
	if len(assignments) == 0 {
		return msgNoAssignments
	}

	lines := make([]string, 0, len(assignments))
	for _, a := range assignments {
		due := "Not Set"
		if a.DueDate != nil {
			due = a.DueDate.Format(dueDateLayout)
		}
		lines = append(lines, fmt.Sprintf("- %s: %s (Due: %s)", a.Course.Code, a.Title, due))
	}
	return assignmentsHeader + strings.Join(lines, "\n")
}

// enrollmentsAnswer lists every course the student is enrolled in.
func (s *Service) enrollmentsAnswer(studentID uint) string {
	var enrollments []models.Enrollment
	err := s.db.
		Where("student_id = ? AND is_deleted = ?", studentID, false).
		Preload("Course").
		Find(&enrollments).Error
	if err != nil {
		log.Printf("Chatbot error fetching enrollments for user %d: %v", studentID, err)
		return msgGenericError
	}
	if len(enrollments) == 0 {
		return msgNoCourses
	}

	lines := make([]string, 0, len(enrollments))
	for _, e := range enrollments {
		lines = append(lines, fmt.Sprintf("- %s: %s", e.Course.Code, e.Course.Name))
	}
	return enrollmentsHeader + strings.Join(lines, "\n")
}

// contentAnswer runs the retrieval-augmented path: embed the query,
// search the index within the student's enrollment scope, and prompt
// the model with the retrieved context. Every failure past the
// precondition checks degrades to a fixed message; nothing here may
// surface as an error to the HTTP layer.
func (s *Service) contentAnswer(ctx context.Context, studentID uint, query string) (string, []string) {
	if s.genai == nil || s.store == nil {
		return msgUnavailable, nil
	}

	courseIDs, err := s.enrolledCourseIDs(studentID)
	if err != nil {
		log.Printf("Chatbot error fetching enrollments for user %d: %v", studentID, err)
		return msgGenericError, nil
	}
	if len(courseIDs) == 0 {
		return msgNoContent, nil
	}

	scope := make([]string, len(courseIDs))
	for i, id := range courseIDs {
		scope[i] = strconv.FormatUint(uint64(id), 10)
	}

	vector, err := s.genai.Embed(ctx, query)
	if err != nil {
		log.Printf("Chatbot error embedding query: %v", err)
		return msgGenericError, nil
	}

	results, err := s.store.Search(ctx, vector, s.topK, scope)
	if err != nil {
		log.Printf("Chatbot error searching vector store: %v", err)
		return msgGenericError, nil
	}

	contexts := make([]string, 0, len(results))
	for _, r := range results {
		contexts = append(contexts, r.Text)
	}

	prompt := fmt.Sprintf(contentPrompt, strings.Join(contexts, "\n\n"), query)
	answer, err := s.genai.Generate(ctx, prompt)
	if err != nil {
		log.Printf("Chatbot error generating answer: %v", err)
		return msgGenericError, nil
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		answer = msgFallbackAnswer
	}
	return answer, contexts
}

// enrolledCourseIDs is the student's content-access scope.
func (s *Service) enrolledCourseIDs(studentID uint) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.Enrollment{}).
		Where("student_id = ? AND is_deleted = ?", studentID, false).
		Pluck("course_id", &ids).Error
	return ids, err
}
