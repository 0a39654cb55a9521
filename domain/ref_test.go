package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRef(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		recordType string
		want       Ref
		wantErr    bool
	}{
		{name: "canonical user", in: "resource:org.example.todolist.User#bobby@x.com", recordType: TypeUser, want: UserRef("bobby@x.com")},
		{name: "canonical task", in: "resource:org.example.todolist.Task#Task-1", recordType: TypeTask, want: NewRelationship(TypeTask, "Task-1")},
		{name: "bare email", in: " robin@x.com ", recordType: TypeUser, want: UserRef("robin@x.com")},
		{name: "bare task id", in: "Task-1", recordType: TypeTask, want: NewRelationship(TypeTask, "Task-1")},
		{name: "empty", in: "", recordType: TypeUser, want: Ref{}},
		{name: "task where user expected", in: "resource:org.example.todolist.Task#Task-9", recordType: TypeUser, wantErr: true},
		{name: "user where task expected", in: "resource:org.example.todolist.User#Task-1", recordType: TypeTask, wantErr: true},
		{name: "foreign namespace", in: "resource:com.evil.User#bobby@x.com", recordType: TypeUser, wantErr: true},
		{name: "missing id", in: "resource:org.example.todolist.User#", recordType: TypeUser, wantErr: true},
		{name: "missing type", in: "resource:User#bobby@x.com", recordType: TypeUser, wantErr: true},
		{name: "missing hash", in: "resource:org.example.todolist.User", recordType: TypeUser, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRef(tt.in, tt.recordType)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidReference)
				require.True(t, IsDomainError(err, ErrCodeInvalidArgument))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestRefText(t *testing.T) {
	ref := UserRef("alfred@x.com")
	require.Equal(t, "resource:org.example.todolist.User#alfred@x.com", ref.String())
	require.Equal(t, "", Ref{}.String())

	payload, err := json.Marshal(struct {
		By Ref `json:"by"`
	}{By: ref})
	require.NoError(t, err)
	require.JSONEq(t, `{"by":"resource:org.example.todolist.User#alfred@x.com"}`, string(payload))

	var decoded struct {
		By Ref `json:"by"`
	}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	require.Equal(t, ref, decoded.By)

	err = json.Unmarshal([]byte(`{"by":"resource:com.evil.Task#Task-9"}`), &decoded)
	require.ErrorIs(t, err, ErrInvalidReference)
}
