package extractor_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sho/internal/adapters/extractor"
	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/sho/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func respond(output string) func(context.Context, []string, io.Writer) error {
	return func(_ context.Context, _ []string, stdout io.Writer) error {
		_, err := io.WriteString(stdout, output)
		return err
	}
}

func TestScript_ExtractMetrics(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []domain.Metrics
	}{
		{
			name:   "json sequence",
			output: `[{"total_score": -10, "loop_rmsd": 0.5}, {"total_score": -8.25}]`,
			want: []domain.Metrics{
				{"total_score": -10, "loop_rmsd": 0.5},
				{"total_score": -8.25},
			},
		},
		{
			name:   "yaml document stream",
			output: "total_score: -10\nlabel: design\n---\ntotal_score: 4\n",
			want: []domain.Metrics{
				{"total_score": -10},
				{"total_score": 4},
			},
		},
		{
			name:   "null marks a failed model",
			output: "- {total_score: 1}\n- null\n",
			want: []domain.Metrics{
				{"total_score": 1},
				nil,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			runner := mocks.NewMockCommandRunner(ctrl)
			runner.EXPECT().
				Output(gomock.Any(), []string{"score-models", "--fast", "/d/a.pdb", "/d/b.pdb"}, gomock.Any()).
				DoAndReturn(respond(tt.output))

			ex := extractor.NewScript([]string{"score-models", "--fast"}, runner)
			got, err := ex.ExtractMetrics(context.Background(), []string{"/d/a.pdb", "/d/b.pdb"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScript_ExtractMetrics_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("command fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := mocks.NewMockCommandRunner(ctrl)
		runner.EXPECT().Output(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("exit status 2"))

		_, err := extractor.NewScript([]string{"score"}, runner).ExtractMetrics(ctx, []string{"/d/a.pdb"})
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrExtractionFailed.Error())
	})

	t.Run("count mismatch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := mocks.NewMockCommandRunner(ctrl)
		runner.EXPECT().Output(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(respond(`[{"total_score": 1}]`))

		_, err := extractor.NewScript([]string{"score"}, runner).ExtractMetrics(ctx, []string{"/d/a.pdb", "/d/b.pdb"})
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrExtractorOutputMismatch.Error())
	})

	t.Run("invalid output", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := mocks.NewMockCommandRunner(ctrl)
		runner.EXPECT().Output(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(respond("{unclosed"))

		_, err := extractor.NewScript([]string{"score"}, runner).ExtractMetrics(ctx, []string{"/d/a.pdb"})
		require.Error(t, err)
	})

	t.Run("empty batch does not run the command", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := mocks.NewMockCommandRunner(ctrl)

		got, err := extractor.NewScript([]string{"score"}, runner).ExtractMetrics(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
