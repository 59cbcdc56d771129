package main

import (
	"context"

	"gorm.io/datatypes"

	"testinsight-backend/internal/model"
	"testinsight-backend/internal/repository"
	"testinsight-backend/utilities"
)

// sampleTest is a small three-section mock exam for local runs.
func sampleTest() *model.Test {
	opts := func(o ...string) datatypes.JSONSlice[string] { return datatypes.JSONSlice[string](o) }
	return &model.Test{
		Title: "Sample mock exam",
		Sections: []model.Section{
			{Subject: "Physics", Questions: []model.Question{
				{Text: "Calculate the force on a 2kg mass accelerating at 3m/s²", Options: opts("3N", "6N", "9N", "12N"), CorrectOption: 1, Difficulty: model.DifficultyMedium},
				{Text: "What is sin(30°)?", Options: opts("0", "1", "0.5", "1.5"), CorrectOption: 2, Difficulty: model.DifficultyEasy},
				{Text: "A ball is thrown upward with velocity 20 m/s. Find the maximum height reached.", Options: opts("10 m", "20 m", "40 m", "5 m"), CorrectOption: 1, Difficulty: model.DifficultyMedium},
				{Text: "Find the current through a 10 ohm resistor connected to a 5 V battery.", Options: opts("0.5 A", "2 A", "50 A", "5 A"), CorrectOption: 0, Difficulty: model.DifficultyEasy},
			}},
			{Subject: "Chemistry", Questions: []model.Question{
				{Text: "How many moles are in 36 g of water?", Options: opts("1", "2", "3", "0.5"), CorrectOption: 1, Difficulty: model.DifficultyEasy},
				{Text: "What is the pH of a 0.01 M HCl solution?", Options: opts("1", "2", "12", "7"), CorrectOption: 1, Difficulty: model.DifficultyMedium},
				{Text: "Name the functional group in ethanol.", Options: opts("Aldehyde", "Hydroxyl", "Carboxyl", "Ketone"), CorrectOption: 1, Difficulty: model.DifficultyEasy},
			}},
			{Subject: "Mathematics", Questions: []model.Question{
				{Text: "What is 15% of 240?", Options: opts("24", "36", "30", "40"), CorrectOption: 1, Difficulty: model.DifficultyEasy},
				{Text: "Solve x² - 5x + 6 = 0", Options: opts("1, 6", "2, 3", "-2, -3", "3, 4"), CorrectOption: 1, Difficulty: model.DifficultyMedium},
				{Text: "Find the derivative of x³", Options: opts("x²", "3x²", "3x", "x³/3"), CorrectOption: 1, Difficulty: model.DifficultyHard},
			}},
		},
	}
}

func seedSampleTest(ctx context.Context, tests repository.TestRepository) error {
	test := sampleTest()
	if err := tests.CreateTest(ctx, test); err != nil {
		return err
	}
	utilities.Info("Seeded sample test %d (%d questions)", test.ID, test.QuestionCount())
	return nil
}
