package interview

// SelectQuestion picks the next unused question for the state's current
// difficulty. Medium questions are always acceptable fillers regardless of the
// current tier. When nothing matches, the search widens to any unused question;
// a nil result means the bank is exhausted.
//
// Selection is deterministic: the first match in bank order wins, so an
// identical bank and history always reproduce the same session.
func SelectQuestion(source QuestionSource, state *State) *QuestionRecord {
	if source == nil {
		return nil
	}

	used := make(map[string]struct{}, len(state.AskedQuestions))
	for _, q := range state.AskedQuestions {
		used[q.ID] = struct{}{}
	}

	records := source.Records()

	for i := range records {
		if _, ok := used[records[i].ID]; ok {
			continue
		}
		if records[i].Difficulty == state.Difficulty || records[i].Difficulty == DifficultyMedium {
			return &records[i]
		}
	}

	for i := range records {
		if _, ok := used[records[i].ID]; !ok {
			return &records[i]
		}
	}

	return nil
}

// FirstByTopic returns the first question in bank order with the given topic,
// or nil when the bank has none.
func FirstByTopic(source QuestionSource, topic string) *QuestionRecord {
	if source == nil {
		return nil
	}

	records := source.Records()
	for i := range records {
		if records[i].Topic == topic {
			return &records[i]
		}
	}
	return nil
}
