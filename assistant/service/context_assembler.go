package service

import (
	"context"
	"fmt"
	"strings"

	"classroom-qa-demo/backend/ai"
	"classroom-qa-demo/backend/assistant/models"
)

const studentPromptHeader = "You are a helpful teaching assistant for a university course. " +
	"Answer the student's message. Use the current forum state below when it is relevant; " +
	"encourage the student to post recurring questions to the forum."

const insightPromptHeader = "You are an analytics assistant for a course lecturer. " +
	"Analyze the anonymized student conversation logs below and answer the lecturer's query " +
	"with aggregate trends, common misconceptions and recurring topics. " +
	"Do not quote individual messages and do not identify or single out any student."

// SnapshotSource supplies the rendered forum summary injected into prompts
type SnapshotSource interface {
	Snapshot(ctx context.Context, limit int) (string, error)
}

// ContextAssembler merges session history, forum state and the caller's new
// message into the prompt for one assistant turn. The new message is
// persisted to the transcript, represented once inside the outgoing prompt,
// and never duplicated into the prior turns that seed the chat call. The
// forum snapshot is injected transiently so it stays fresh every turn
// without polluting the stored transcript.
type ContextAssembler struct {
	transcript   *TranscriptService
	snapshot     SnapshotSource
	chatLimit    int
	insightLimit int
}

func NewContextAssembler(transcript *TranscriptService, snapshot SnapshotSource, chatLimit, insightLimit int) *ContextAssembler {
	if chatLimit <= 0 {
		chatLimit = 10
	}
	if insightLimit <= 0 {
		insightLimit = 20
	}
	return &ContextAssembler{
		transcript:   transcript,
		snapshot:     snapshot,
		chatLimit:    chatLimit,
		insightLimit: insightLimit,
	}
}

// AssembleStudent appends message as a user turn and builds the student-mode
// prompt: instruction header, forum snapshot and the literal message. The
// returned prior turns are the session history before this message.
func (a *ContextAssembler) AssembleStudent(ctx context.Context, sessionID, message string) ([]ai.Turn, string, error) {
	appended, err := a.transcript.Append(ctx, sessionID, models.ActorStudent, models.TurnUser, message)
	if err != nil {
		return nil, "", err
	}

	prior, err := a.priorTurns(ctx, sessionID, appended.ID)
	if err != nil {
		return nil, "", err
	}

	snapshot, err := a.snapshot.Snapshot(ctx, a.chatLimit)
	if err != nil {
		return nil, "", err
	}

	var sb strings.Builder
	sb.WriteString(studentPromptHeader)
	sb.WriteString("\n\nCurrent forum questions:\n")
	sb.WriteString(snapshot)
	sb.WriteString("\n\nStudent message: ")
	sb.WriteString(message)
	return prior, sb.String(), nil
}

// AssembleInsight appends query to the lecturer's own session and builds the
// lecturer-mode prompt over the student-session corpus and the forum
// snapshot. The lecturer's transcript provides multi-turn continuity; it is
// never part of the analyzed corpus.
func (a *ContextAssembler) AssembleInsight(ctx context.Context, sessionID, query string) ([]ai.Turn, string, error) {
	appended, err := a.transcript.Append(ctx, sessionID, models.ActorLecturer, models.TurnUser, query)
	if err != nil {
		return nil, "", err
	}

	prior, err := a.priorTurns(ctx, sessionID, appended.ID)
	if err != nil {
		return nil, "", err
	}

	corpus, err := a.studentCorpus(ctx)
	if err != nil {
		return nil, "", err
	}

	snapshot, err := a.snapshot.Snapshot(ctx, a.insightLimit)
	if err != nil {
		return nil, "", err
	}

	var sb strings.Builder
	sb.WriteString(insightPromptHeader)
	sb.WriteString("\n\nStudent conversation logs:\n")
	sb.WriteString(corpus)
	sb.WriteString("\n\nCurrent forum questions:\n")
	sb.WriteString(snapshot)
	sb.WriteString("\n\nLecturer query: ")
	sb.WriteString(query)
	return prior, sb.String(), nil
}

// priorTurns reads the session history back and converts it for the
// stateful chat call, excluding the message that was just appended
func (a *ContextAssembler) priorTurns(ctx context.Context, sessionID string, appendedID uint) ([]ai.Turn, error) {
	history, err := a.transcript.History(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	turns := make([]ai.Turn, 0, len(history))
	for _, msg := range history {
		if msg.ID == appendedID {
			continue
		}
		role := ai.RoleUser
		if msg.Role == models.TurnModel {
			role = ai.RoleModel
		}
		turns = append(turns, ai.Turn{Role: role, Content: msg.Content})
	}
	return turns, nil
}

// studentCorpus concatenates every student session's transcript, one
// delimited group per session in session-creation then insertion order.
// Sessions are numbered rather than named so the corpus carries no
// identifying keys.
func (a *ContextAssembler) studentCorpus(ctx context.Context) (string, error) {
	sessions, err := a.transcript.StudentSessions(ctx)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	n := 0
	for _, session := range sessions {
		history, err := a.transcript.History(ctx, session.SessionID)
		if err != nil {
			return "", err
		}
		if len(history) == 0 {
			continue
		}
		n++
		if n > 1 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "--- conversation %d ---\n", n)
		for _, msg := range history {
			fmt.Fprintf(&sb, "%s: %s\n", msg.Role, msg.Content)
		}
	}
	if n == 0 {
		return "No student conversations recorded yet.", nil
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
