package local

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/learnhub/learnhub-api/internal/core/domain"
)

// seedPassword is the login password for every seeded account.
const seedPassword = "learnhub"

// seedData builds the sample catalog written to a fresh data file.
func seedData() fileData {
	hash, _ := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)

	users := []*domain.User{
		seedUser("user_1", "john@learnhub.dev", "John Smith", domain.RoleInstructor, hash),
		seedUser("user_4", "emily@learnhub.dev", "Emily Chen", domain.RoleInstructor, hash),
		seedUser("user_8", "michael@learnhub.dev", "Michael Johnson", domain.RoleInstructor, hash),
		seedUser("user_2", "alice@learnhub.dev", "Alice Torres", domain.RoleStudent, hash),
		seedUser("user_3", "bruno@learnhub.dev", "Bruno Keller", domain.RoleStudent, hash),
	}

	profiles := []*domain.Profile{
		seedProfile("user_1", "John Smith", "Senior Web Developer with 10+ years of experience"),
		seedProfile("user_4", "Emily Chen", "UI/UX Designer with experience at top tech companies"),
		seedProfile("user_8", "Michael Johnson", "Data Scientist with PhD in Computer Science"),
	}

	courses := []*domain.Course{
		seedCourse("course_1", "Introduction to Web Development",
			"Learn the fundamentals of web development including HTML, CSS, and JavaScript. Build responsive websites from scratch.",
			"Programming", 49.99, "8 weeks", domain.LevelBeginner, "user_1",
			time.Date(2023, 1, 15, 10, 0, 0, 0, time.UTC)),
		seedCourse("course_2", "UI/UX Design Principles",
			"Master the principles of user interface and user experience design. Create beautiful and functional designs for web and mobile applications.",
			"Design", 59.99, "6 weeks", domain.LevelAll, "user_4",
			time.Date(2023, 2, 20, 14, 30, 0, 0, time.UTC)),
		seedCourse("course_3", "Data Science Fundamentals",
			"Introduction to data science concepts, tools, and methodologies. Learn how to analyze data and derive meaningful insights.",
			"Data Science", 69.99, "10 weeks", domain.LevelIntermediate, "user_8",
			time.Date(2023, 3, 10, 9, 15, 0, 0, time.UTC)),
	}

	lessons := seedLessons("course_1", [][2]string{
		{"HTML Basics", "Introduction to HTML structure and elements"},
		{"CSS Styling", "Learn how to style your web pages with CSS"},
		{"JavaScript Fundamentals", "Introduction to programming with JavaScript"},
	})
	lessons = append(lessons, seedLessons("course_2", [][2]string{
		{"Design Thinking", "Understanding the design thinking process"},
		{"User Research", "Methods for conducting effective user research"},
		{"Wireframing and Prototyping", "Creating wireframes and interactive prototypes"},
	})...)
	lessons = append(lessons, seedLessons("course_3", [][2]string{
		{"Introduction to Python", "Getting started with Python for data analysis"},
		{"Data Visualization", "Creating effective visualizations with matplotlib and seaborn"},
		{"Statistical Analysis", "Basic statistical concepts for data science"},
	})...)

	enrollments := []*domain.Enrollment{
		seedEnrollment("enroll_1", "user_2", "course_1"),
		seedEnrollment("enroll_2", "user_3", "course_1"),
		seedEnrollment("enroll_3", "user_2", "course_3"),
	}

	return fileData{
		Users:       users,
		Profiles:    profiles,
		Courses:     courses,
		Lessons:     lessons,
		Enrollments: enrollments,
	}
}

func seedUser(id, email, name, role string, hash []byte) *domain.User {
	now := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	return &domain.User{
		ID:           id,
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func seedProfile(userID, name, bio string) *domain.Profile {
	now := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	return &domain.Profile{
		UserID:    userID,
		Name:      name,
		Bio:       bio,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func seedCourse(id, title, description, category string, price float64, duration string, level domain.CourseLevel, instructorID string, createdAt time.Time) *domain.Course {
	return &domain.Course{
		ID:           id,
		Title:        title,
		Description:  description,
		Category:     category,
		Price:        price,
		Duration:     duration,
		Level:        level,
		InstructorID: instructorID,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

func seedLessons(courseID string, entries [][2]string) []*domain.Lesson {
	now := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
	lessons := make([]*domain.Lesson, len(entries))
	for i, e := range entries {
		lessons[i] = &domain.Lesson{
			ID:         fmt.Sprintf("%s_lesson_%d", courseID, i+1),
			CourseID:   courseID,
			Title:      e[0],
			Content:    e[1],
			OrderIndex: i,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
	}
	return lessons
}

func seedEnrollment(id, userID, courseID string) *domain.Enrollment {
	return &domain.Enrollment{
		ID:         id,
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: time.Date(2023, 7, 15, 12, 0, 0, 0, time.UTC),
	}
}
