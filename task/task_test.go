package task

import (
	"testing"
)

func TestSplitCoversEveryColumnOnce(t *testing.T) {
	tests := []struct {
		width          uint
		columnsPerTask uint
		tasks          int
	}{
		{720, 8, 90},
		{64, 5, 13},
		{10, 10, 1},
		{3, 8, 1},
		{1, 1, 1},
	}
	for _, tt := range tests {
		tasks := Split(tt.width, Column, tt.columnsPerTask)
		if len(tasks) != tt.tasks {
			t.Errorf("Split(%d, Column, %d) made %d tasks, want %d", tt.width, tt.columnsPerTask, len(tasks), tt.tasks)
		}

		seen := make([]int, tt.width)
		for id, task := range tasks {
			if task.ID != uint(id) {
				t.Errorf("task %d has ID %d", id, task.ID)
			}
			if task.Columns() == 0 || task.Columns() > tt.columnsPerTask {
				t.Errorf("task %s has %d columns", task.String(), task.Columns())
			}
			for c := task.StartColumn; c < task.EndColumn; c++ {
				seen[c]++
			}
		}
		for c, n := range seen {
			if n != 1 {
				t.Fatalf("width %d: column %d covered %d times", tt.width, c, n)
			}
		}
	}
}

func TestSplitImageGeneration(t *testing.T) {
	tasks := Split(720, Image, 8)
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
	if tasks[0].StartColumn != 0 || tasks[0].EndColumn != 720 {
		t.Errorf("task = %s", tasks[0].String())
	}
}

func TestSplitEmptyImage(t *testing.T) {
	if tasks := Split(0, Column, 8); tasks != nil {
		t.Errorf("Split(0) = %v, want nil", tasks)
	}
}

func TestColumnsOfInvertedTask(t *testing.T) {
	task := NewTask(0, 10, 4)
	if task.Columns() != 0 {
		t.Errorf("Columns() = %d, want 0", task.Columns())
	}
}
