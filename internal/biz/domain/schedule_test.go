package domain

import "testing"

func decidedWithCount(id string, count int) Decided {
	d := Decision{}
	if count > 0 {
		d.Like = true
	}
	if count > 1 {
		d.Retweet = true
	}
	if count > 2 {
		d.Quote = true
	}
	if count > 3 {
		d.Reply = true
	}
	return Decided{Tweet: Tweet{ID: id}, Decision: d}
}

func TestScheduleActions_OrdersByActionCount(t *testing.T) {
	input := []Decided{
		decidedWithCount("a", 3),
		decidedWithCount("b", 1),
		decidedWithCount("c", 4),
		decidedWithCount("d", 1),
	}

	got := ScheduleActions(input, 10)

	want := []string{"c", "a", "b", "d"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d items, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].Tweet.ID != id {
			t.Errorf("Position %d: expected %s, got %s", i, id, got[i].Tweet.ID)
		}
	}
}

func TestScheduleActions_LikeBreaksTies(t *testing.T) {
	input := []Decided{
		{Tweet: Tweet{ID: "reply-only"}, Decision: Decision{Reply: true}},
		{Tweet: Tweet{ID: "like-only"}, Decision: Decision{Like: true}},
	}

	got := ScheduleActions(input, 10)

	if got[0].Tweet.ID != "like-only" {
		t.Errorf("Expected like=true item first at equal counts, got %s", got[0].Tweet.ID)
	}
}

func TestScheduleActions_TiesKeepInputOrder(t *testing.T) {
	input := []Decided{
		{Tweet: Tweet{ID: "first"}, Decision: Decision{Like: true}},
		{Tweet: Tweet{ID: "second"}, Decision: Decision{Like: true}},
		{Tweet: Tweet{ID: "third"}, Decision: Decision{Like: true}},
	}

	got := ScheduleActions(input, 10)

	for i, id := range []string{"first", "second", "third"} {
		if got[i].Tweet.ID != id {
			t.Errorf("Position %d: expected %s, got %s", i, id, got[i].Tweet.ID)
		}
	}
}

func TestScheduleActions_Truncates(t *testing.T) {
	var input []Decided
	for i := 0; i < 10; i++ {
		input = append(input, decidedWithCount(string(rune('a'+i)), 1+i%4))
	}

	got := ScheduleActions(input, 3)

	if len(got) != 3 {
		t.Fatalf("Expected 3 items after truncation, got %d", len(got))
	}
	for _, d := range got {
		if d.Decision.ActionCount() != 4 {
			t.Errorf("Expected only count=4 items to survive, got %s with %d", d.Tweet.ID, d.Decision.ActionCount())
		}
	}
}

func TestScheduleActions_Empty(t *testing.T) {
	if got := ScheduleActions(nil, 5); len(got) != 0 {
		t.Errorf("Expected empty schedule, got %d items", len(got))
	}
}

func TestDecisionActions(t *testing.T) {
	d := Decision{Like: true, Reply: true}
	got := d.Actions()
	if len(got) != 2 || got[0] != ActionLike || got[1] != ActionReply {
		t.Errorf("Unexpected action names: %v", got)
	}
	if d.ActionCount() != 2 {
		t.Errorf("Expected count 2, got %d", d.ActionCount())
	}
}
