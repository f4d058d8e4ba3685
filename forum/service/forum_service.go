package service

import (
	"context"
	"errors"
	"strings"

	"classroom-qa-demo/backend/forum/models"
	"classroom-qa-demo/backend/forum/repository"
	apperrors "classroom-qa-demo/backend/pkg/errors"
	"classroom-qa-demo/backend/pkg/logger"
	usermodels "classroom-qa-demo/backend/user/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Target kinds the reaction ledger operates over
const (
	TargetQuestion = "question"
	TargetComment  = "comment"
)

// LecturerRole marks a caller allowed to delete any question or comment
const LecturerRole = "lecturer"

// IdentityDirectory is the slice of the user service the forum needs:
// Resolve auto-creates unknown names (reacting as an unknown username
// silently creates that user), Lookup never creates.
type IdentityDirectory interface {
	Resolve(ctx context.Context, name string) (*usermodels.User, error)
	Lookup(ctx context.Context, name string) (*usermodels.User, error)
}

// ForumService owns questions, comments and their reaction ledgers
type ForumService struct {
	questions      repository.QuestionRepository
	comments       repository.CommentRepository
	questionLedger *ReactionLedger
	commentLedger  *ReactionLedger
	users          IdentityDirectory
	log            *logger.Logger
}

func NewForumService(
	questions repository.QuestionRepository,
	comments repository.CommentRepository,
	questionStore repository.ReactionStore,
	commentStore repository.ReactionStore,
	users IdentityDirectory,
	log *logger.Logger,
) *ForumService {
	return &ForumService{
		questions:      questions,
		comments:       comments,
		questionLedger: NewReactionLedger(questionStore),
		commentLedger:  NewReactionLedger(commentStore),
		users:          users,
		log:            log.WithComponent("forum"),
	}
}

// CreateQuestion posts a new question. Content is required; a blank author
// is recorded as Anonymous.
func (s *ForumService) CreateQuestion(ctx context.Context, author, content string, tags []string) (*models.Question, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewInvalidInputError("INVALID_QUESTION", "question content must not be empty")
	}
	author = strings.TrimSpace(author)
	if author == "" {
		author = "Anonymous"
	}
	if tags == nil {
		tags = []string{}
	}

	question := &models.Question{
		Author:  author,
		Content: content,
		Tags:    datatypes.NewJSONSlice(tags),
	}
	if err := s.questions.Create(ctx, question); err != nil {
		return nil, err
	}
	s.log.Info("question created", "question_id", question.ID, "author", author)
	return question, nil
}

// ListQuestions returns all questions, newest first, each with its live
// reaction tally and the caller's own reaction. The caller name is looked
// up, never created.
func (s *ForumService) ListQuestions(ctx context.Context, callerUsername string) ([]models.QuestionView, error) {
	questions, err := s.questions.List(ctx)
	if err != nil {
		return nil, err
	}

	var callerID uint
	if caller, err := s.users.Lookup(ctx, callerUsername); err != nil {
		return nil, err
	} else if caller != nil {
		callerID = caller.ID
	}

	views := make([]models.QuestionView, 0, len(questions))
	for _, q := range questions {
		counts, own, err := s.questionLedger.Summarize(ctx, q.ID, callerID)
		if err != nil {
			return nil, err
		}
		views = append(views, models.QuestionView{
			Question:       q,
			ReactionCounts: counts,
			UserReaction:   own,
		})
	}
	return views, nil
}

// UpdateQuestion edits content and optionally tags. Author only.
func (s *ForumService) UpdateQuestion(ctx context.Context, id uint, username, content string, tags *[]string) (*models.Question, error) {
	question, err := s.getQuestion(ctx, id)
	if err != nil {
		return nil, err
	}
	if question.Author != strings.TrimSpace(username) {
		return nil, apperrors.NewForbiddenError("NOT_AUTHOR", "only the author can edit a question")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewInvalidInputError("INVALID_QUESTION", "question content must not be empty")
	}

	question.Content = content
	if tags != nil {
		question.Tags = datatypes.NewJSONSlice(*tags)
	}
	if err := s.questions.Update(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// ResolveQuestion flips the resolved flag. Author only.
func (s *ForumService) ResolveQuestion(ctx context.Context, id uint, username string, resolved bool) (*models.Question, error) {
	question, err := s.getQuestion(ctx, id)
	if err != nil {
		return nil, err
	}
	if question.Author != strings.TrimSpace(username) {
		return nil, apperrors.NewForbiddenError("NOT_AUTHOR", "only the author can resolve a question")
	}

	question.Resolved = resolved
	if err := s.questions.Update(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// DeleteQuestion removes a question together with its comments and
// reactions. Allowed for the author and for lecturer-role callers.
func (s *ForumService) DeleteQuestion(ctx context.Context, id uint, username, role string) error {
	question, err := s.getQuestion(ctx, id)
	if err != nil {
		return err
	}
	if question.Author != strings.TrimSpace(username) && role != LecturerRole {
		return apperrors.NewForbiddenError("NOT_AUTHOR", "only the author or a lecturer can delete a question")
	}
	if err := s.questions.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("question deleted", "question_id", id, "by", username, "role", role)
	return nil
}

// CreateComment posts a comment under an existing question
func (s *ForumService) CreateComment(ctx context.Context, questionID uint, author, content string) (*models.Comment, error) {
	if _, err := s.getQuestion(ctx, questionID); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewInvalidInputError("INVALID_COMMENT", "comment content must not be empty")
	}
	author = strings.TrimSpace(author)
	if author == "" {
		author = "Anonymous"
	}

	comment := &models.Comment{
		QuestionID: questionID,
		Author:     author,
		Content:    content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns a question's comments in creation order, each with
// its reaction tally and the caller's own reaction
func (s *ForumService) ListComments(ctx context.Context, questionID uint, callerUsername string) ([]models.CommentView, error) {
	if _, err := s.getQuestion(ctx, questionID); err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}

	var callerID uint
	if caller, err := s.users.Lookup(ctx, callerUsername); err != nil {
		return nil, err
	} else if caller != nil {
		callerID = caller.ID
	}

	views := make([]models.CommentView, 0, len(comments))
	for _, comment := range comments {
		counts, own, err := s.commentLedger.Summarize(ctx, comment.ID, callerID)
		if err != nil {
			return nil, err
		}
		views = append(views, models.CommentView{
			Comment:        comment,
			ReactionCounts: counts,
			UserReaction:   own,
		})
	}
	return views, nil
}

// UpdateComment edits a comment's content. Author only.
func (s *ForumService) UpdateComment(ctx context.Context, id uint, username, content string) (*models.Comment, error) {
	comment, err := s.getComment(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.Author != strings.TrimSpace(username) {
		return nil, apperrors.NewForbiddenError("NOT_AUTHOR", "only the author can edit a comment")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewInvalidInputError("INVALID_COMMENT", "comment content must not be empty")
	}

	comment.Content = content
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment. Allowed for the author and for
// lecturer-role callers.
func (s *ForumService) DeleteComment(ctx context.Context, id uint, username, role string) error {
	comment, err := s.getComment(ctx, id)
	if err != nil {
		return err
	}
	if comment.Author != strings.TrimSpace(username) && role != LecturerRole {
		return apperrors.NewForbiddenError("NOT_AUTHOR", "only the author or a lecturer can delete a comment")
	}
	return s.comments.Delete(ctx, id)
}

// React toggles the calling user's reaction on a question or comment.
// Unknown usernames are created on the fly; the forum has no registration
// step beyond login.
func (s *ForumService) React(ctx context.Context, targetKind string, targetID uint, username, reactionType string) (ToggleResult, error) {
	var ledger *ReactionLedger
	switch targetKind {
	case TargetQuestion:
		if _, err := s.getQuestion(ctx, targetID); err != nil {
			return "", err
		}
		ledger = s.questionLedger
	case TargetComment:
		if _, err := s.getComment(ctx, targetID); err != nil {
			return "", err
		}
		ledger = s.commentLedger
	default:
		return "", apperrors.NewInvalidInputError("INVALID_TARGET", "unknown reaction target kind")
	}

	normalized, err := NormalizeReactionType(reactionType)
	if err != nil {
		return "", err
	}

	user, err := s.users.Resolve(ctx, username)
	if err != nil {
		return "", err
	}

	result, err := ledger.Toggle(ctx, targetID, user.ID, normalized)
	if err != nil {
		return "", err
	}
	s.log.Debug("reaction toggled",
		"target_kind", targetKind,
		"target_id", targetID,
		"user_id", user.ID,
		"reaction", normalized,
		"result", string(result),
	)
	return result, nil
}

func (s *ForumService) getQuestion(ctx context.Context, id uint) (*models.Question, error) {
	question, err := s.questions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("QUESTION_NOT_FOUND", "question not found")
		}
		return nil, err
	}
	return question, nil
}

func (s *ForumService) getComment(ctx context.Context, id uint) (*models.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("COMMENT_NOT_FOUND", "comment not found")
		}
		return nil, err
	}
	return comment, nil
}
