package database

import (
	"time"

	"github.com/samora254/KitabuNew/internal/model"

	"gorm.io/gorm"
)

// SeedCurriculum inserts the starter Grade 8 CBC content when the
// subjects table is empty. Reference data only; user activity tables are
// never seeded.
func SeedCurriculum(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Subject{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	subjects := []model.Subject{
		{Name: "Mathematics", Code: "MATH", Description: "Numbers, algebra, geometry, and data handling", IconColor: "#4A90E2", TotalStrands: 20},
		{Name: "English", Code: "ENG", Description: "Reading, writing, speaking and listening", IconColor: "#9B59B6", TotalStrands: 20},
		{Name: "Kiswahili", Code: "KIS", Description: "Kusoma, kuandika, mazungumzo na ufahamu", IconColor: "#E74C3C", TotalStrands: 20},
		{Name: "Science", Code: "SCI", Description: "Matter, energy, living things, and earth science", IconColor: "#27AE60", TotalStrands: 20},
		{Name: "Social Studies", Code: "SS", Description: "History, geography, civics and citizenship", IconColor: "#F39C12", TotalStrands: 20},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&subjects).Error; err != nil {
			return err
		}

		var math model.Subject
		if err := tx.Where("code = ?", "MATH").First(&math).Error; err != nil {
			return err
		}

		strands := []model.Strand{
			{SubjectID: math.ID, Name: "Number Operations", Description: "Basic arithmetic operations", OrderIndex: 1, TotalTopics: 5},
			{SubjectID: math.ID, Name: "Fractions and Decimals", Description: "Working with fractions and decimals", OrderIndex: 2, TotalTopics: 5},
			{SubjectID: math.ID, Name: "Algebraic Expressions", Description: "Introduction to algebra", OrderIndex: 3, TotalTopics: 5},
			{SubjectID: math.ID, Name: "Geometry", Description: "Shapes, angles, and measurements", OrderIndex: 4, TotalTopics: 5},
			{SubjectID: math.ID, Name: "Data Handling", Description: "Statistics and probability basics", OrderIndex: 5, TotalTopics: 5},
		}
		if err := tx.Create(&strands).Error; err != nil {
			return err
		}

		var algebra model.Strand
		if err := tx.Where("subject_id = ? AND name = ?", math.ID, "Algebraic Expressions").First(&algebra).Error; err != nil {
			return err
		}

		topics := []model.Topic{
			{StrandID: algebra.ID, Name: "Variables and Constants", Description: "Understanding variables and constants", OrderIndex: 1, XPReward: 25},
			{StrandID: algebra.ID, Name: "Simplifying Expressions", Description: "Combining like terms", OrderIndex: 2, XPReward: 30},
			{StrandID: algebra.ID, Name: "Linear Equations", Description: "Solving simple linear equations", OrderIndex: 3, XPReward: 35},
			{StrandID: algebra.ID, Name: "Substitution", Description: "Substituting values in expressions", OrderIndex: 4, XPReward: 30},
			{StrandID: algebra.ID, Name: "Word Problems", Description: "Applying algebra to real-world problems", OrderIndex: 5, XPReward: 40},
		}
		if err := tx.Create(&topics).Error; err != nil {
			return err
		}

		var simplify model.Topic
		if err := tx.Where("strand_id = ? AND name = ?", algebra.ID, "Simplifying Expressions").First(&simplify).Error; err != nil {
			return err
		}

		flashcards := []model.Flashcard{
			{TopicID: simplify.ID, Question: "Simplify: 3x + 5x - 2", Answer: "8x - 2", Explanation: "Combine like terms: 3x + 5x = 8x", OrderIndex: 1},
			{TopicID: simplify.ID, Question: "Simplify: 2y + 7 - y + 3", Answer: "y + 10", Explanation: "Combine like terms: 2y - y = y, and 7 + 3 = 10", OrderIndex: 2},
			{TopicID: simplify.ID, Question: "Simplify: 4a - 2a + 6b", Answer: "2a + 6b", Explanation: "Combine like terms: 4a - 2a = 2a, 6b remains as is", OrderIndex: 3},
			{TopicID: simplify.ID, Question: "Simplify: 5x + 3y - 2x - y", Answer: "3x + 2y", Explanation: "Combine like terms: 5x - 2x = 3x, 3y - y = 2y", OrderIndex: 4},
		}
		if err := tx.Create(&flashcards).Error; err != nil {
			return err
		}

		timeLimit := 15
		quiz := model.Quiz{
			TopicID:      simplify.ID,
			Title:        "Simplifying Expressions Quiz",
			Description:  "Test your understanding of combining like terms",
			TimeLimit:    &timeLimit,
			PassingScore: 70,
			MaxAttempts:  3,
		}
		if err := tx.Create(&quiz).Error; err != nil {
			return err
		}

		questions := []model.QuizQuestion{
			{
				QuizID:        quiz.ID,
				Question:      "Simplify: 7x + 2x - 3",
				QuestionType:  model.QuestionMultipleChoice,
				Options:       []string{"9x - 3", "9x + 3", "5x - 3", "7x - 1"},
				CorrectAnswer: "9x - 3",
				Explanation:   "Combine like terms: 7x + 2x = 9x",
				Points:        2,
				OrderIndex:    1,
			},
			{
				QuizID:        quiz.ID,
				Question:      "What is the coefficient of x in the expression 5x + 3y?",
				QuestionType:  model.QuestionMultipleChoice,
				Options:       []string{"3", "5", "8", "1"},
				CorrectAnswer: "5",
				Explanation:   "The coefficient is the number multiplying the variable",
				Points:        2,
				OrderIndex:    2,
			},
		}
		if err := tx.Create(&questions).Error; err != nil {
			return err
		}

		due := time.Now().AddDate(0, 0, 7)
		homework := model.HomeworkAssignment{
			TopicID:             simplify.ID,
			Title:               "Practice Simplifying Expressions",
			Description:         "Complete the following algebraic expression problems",
			DueDate:             &due,
			MaxScore:            100,
			TeacherInstructions: "Show all your working steps",
			IsActive:            true,
		}
		if err := tx.Create(&homework).Error; err != nil {
			return err
		}

		hwQuestions := []model.HomeworkQuestion{
			{HomeworkID: homework.ID, Question: "Simplify: 6m + 4m - m", QuestionType: model.QuestionShortAnswer, CorrectAnswer: "9m", Rubric: "Full marks for 9m with working shown", Points: 10, OrderIndex: 1},
			{HomeworkID: homework.ID, Question: "Simplify: 3p + 2q - p + 5q", QuestionType: model.QuestionShortAnswer, CorrectAnswer: "2p + 7q", Rubric: "Award partial marks for one correct term", Points: 10, OrderIndex: 2},
		}
		return tx.Create(&hwQuestions).Error
	})
}
