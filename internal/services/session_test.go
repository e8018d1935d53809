package services

import (
	"reflect"
	"sync"
	"testing"

	"github.com/yungbote/shopbot-backend/internal/data/repos/testutil"
)

func TestSessionStoreCreatesLazily(t *testing.T) {
	st := NewSessionStore(testutil.Logger(t))

	unlock := st.LockUser("u1")
	defer unlock()

	s := st.Get("u1")
	if s.Stage != StageDiscover {
		t.Fatalf("fresh session stage = %d, want %d", s.Stage, StageDiscover)
	}
	s.Stage = StageConfirmMap
	if again := st.Get("u1"); again.Stage != StageConfirmMap {
		t.Fatal("session not shared across Get calls")
	}
}

func TestSessionStoreReset(t *testing.T) {
	st := NewSessionStore(testutil.Logger(t))
	unlock := st.LockUser("u1")
	defer unlock()

	s := st.Get("u1")
	s.Stage = StageDrillDown
	s.Record("user", "안녕")

	st.Reset("u1")
	fresh := st.Get("u1")
	if fresh.Stage != StageDiscover || len(fresh.History) != 0 {
		t.Fatalf("reset did not discard session: %+v", fresh)
	}
}

func TestSessionResetToDiscoverKeepsHistory(t *testing.T) {
	s := &Session{Stage: StageDrillDown}
	s.Record("user", "안녕")
	s.Recommendations = RecommendationMap{{Mid: "m", Details: []string{"d"}}}
	s.Selection = &SelectionTarget{MidKey: "m"}
	data := sampleSpecData()
	s.Spec = &data
	s.Drill = DrillState{FirstKey: "색상", Round: 1, AwaitingConfirm: true}

	s.ResetToDiscover()
	if s.Stage != StageDiscover || s.Selection != nil || s.Spec != nil ||
		s.Recommendations != nil || !reflect.DeepEqual(s.Drill, DrillState{}) {
		t.Fatalf("reset incomplete: %+v", s)
	}
	if len(s.History) != 1 {
		t.Fatal("reset must keep history")
	}
}

func TestLockUserSerializesSameUser(t *testing.T) {
	st := NewSessionStore(testutil.Logger(t))

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			unlock := st.LockUser("u1")
			defer unlock()
			s := st.Get("u1")
			s.Stage++
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	unlock := st.LockUser("u1")
	defer unlock()
	if got := st.Get("u1").Stage; got != StageDiscover+8 {
		t.Fatalf("lost update under contention: stage=%d", got)
	}
	if len(order) != 8 {
		t.Fatalf("expected 8 completions, got %d", len(order))
	}
}
