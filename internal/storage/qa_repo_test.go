package storage

import (
	"context"
	"testing"
	"time"
)

func TestQARepo_PersistQA(t *testing.T) {
	notes := newTestDB(t)
	repo := NewQARepo(notes.db)
	ctx := context.Background()

	questionID, err := repo.PersistQA(ctx, "user-1", "What did I buy?", "Milk.")
	if err != nil {
		t.Fatalf("PersistQA() error = %v", err)
	}
	if len(questionID) != 36 {
		t.Errorf("PersistQA() question ID length = %d, want 36", len(questionID))
	}

	var answerQuestionID, answer string
	err = notes.db.QueryRow("SELECT question_id, answer FROM answers WHERE owner_id = ?", "user-1").
		Scan(&answerQuestionID, &answer)
	if err != nil {
		t.Fatalf("failed to read answer: %v", err)
	}
	if answerQuestionID != questionID {
		t.Errorf("answer.question_id = %q, want %q", answerQuestionID, questionID)
	}
	if answer != "Milk." {
		t.Errorf("answer = %q, want Milk.", answer)
	}
}

func TestQARepo_ListByOwner(t *testing.T) {
	notes := newTestDB(t)
	repo := NewQARepo(notes.db)
	ctx := context.Background()

	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	repo.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	if _, err := repo.PersistQA(ctx, "user-1", "first?", "one"); err != nil {
		t.Fatalf("PersistQA() error = %v", err)
	}
	if _, err := repo.PersistQA(ctx, "user-1", "second?", "two"); err != nil {
		t.Fatalf("PersistQA() error = %v", err)
	}
	if _, err := repo.PersistQA(ctx, "user-2", "other?", "nope"); err != nil {
		t.Fatalf("PersistQA() error = %v", err)
	}

	got, err := repo.ListByOwner(ctx, "user-1", 50)
	if err != nil {
		t.Fatalf("ListByOwner() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListByOwner() returned %d records, want 2", len(got))
	}
	if got[0].Question != "second?" || got[0].Answer != "two" {
		t.Errorf("ListByOwner()[0] = %+v, want second?/two", got[0])
	}
	if got[1].Question != "first?" || got[1].Answer != "one" {
		t.Errorf("ListByOwner()[1] = %+v, want first?/one", got[1])
	}
	if !got[0].CreatedAt.After(got[1].CreatedAt) {
		t.Errorf("ListByOwner() not ordered newest first: %v then %v", got[0].CreatedAt, got[1].CreatedAt)
	}
}

func TestQARepo_ListByOwner_QuestionWithoutAnswer(t *testing.T) {
	notes := newTestDB(t)
	repo := NewQARepo(notes.db)
	ctx := context.Background()

	_, err := notes.db.Exec("INSERT INTO questions (id, owner_id, question, created_at) VALUES ('q1', 'user-1', 'orphan?', 1)")
	if err != nil {
		t.Fatalf("failed to insert question: %v", err)
	}

	got, err := repo.ListByOwner(ctx, "user-1", 10)
	if err != nil {
		t.Fatalf("ListByOwner() error = %v", err)
	}
	if len(got) != 1 || got[0].Answer != "" {
		t.Errorf("ListByOwner() = %+v, want one record with empty answer", got)
	}
}

func TestQARepo_AnswerRequiresQuestion(t *testing.T) {
	notes := newTestDB(t)

	_, err := notes.db.Exec("INSERT INTO answers (id, owner_id, question_id, answer, created_at) VALUES ('a1', 'user-1', 'missing', 'x', 1)")
	if err == nil {
		t.Error("inserting an answer for a missing question should violate the foreign key")
	}
}
