package interview

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPendingResponse(t *testing.T) {
	t.Run(`пустой ответ не проходит`, func(t *testing.T) {
		pending := PendingResponse{}
		require.False(t, pending.HasContent())
	})

	t.Run(`текст из одних пробелов не считается контентом`, func(t *testing.T) {
		pending := PendingResponse{TextContent: "   \n\t"}
		require.False(t, pending.HasContent())

		pending = PendingResponse{CodeContent: "   "}
		require.False(t, pending.HasContent())
	})

	t.Run(`любой из каналов разрешает отправку`, func(t *testing.T) {
		require.True(t, PendingResponse{AudioClip: []byte{1}}.HasContent())
		require.True(t, PendingResponse{TextContent: "ответ"}.HasContent())
		require.True(t, PendingResponse{CodeContent: "print(1)"}.HasContent())
	})

	t.Run(`язык кода без кода не считается контентом`, func(t *testing.T) {
		pending := PendingResponse{CodeLanguage: "go"}
		require.False(t, pending.HasContent())
	})

	t.Run(`reset очищает накопленное`, func(t *testing.T) {
		pending := PendingResponse{
			AudioClip:    []byte{1, 2},
			TextContent:  "текст",
			CodeContent:  "код",
			CodeLanguage: "go",
		}
		pending.Reset()
		require.False(t, pending.HasContent())
		require.Nil(t, pending.AudioClip)
	})
}

func TestBuildCombinedResponse(t *testing.T) {
	t.Run(`все каналы заполнены`, func(t *testing.T) {
		combined := BuildCombinedResponse("устный ответ", "текстовый ответ", "fmt.Println(1)", "go")
		expected := "Speech: устный ответ\n\nText: текстовый ответ\n\nCode (go):\nfmt.Println(1)"
		require.Equal(t, expected, combined)
	})

	t.Run(`код без языка`, func(t *testing.T) {
		combined := BuildCombinedResponse("", "", "SELECT 1", "")
		require.Equal(t, "Code:\nSELECT 1", combined)
	})

	t.Run(`только речь`, func(t *testing.T) {
		combined := BuildCombinedResponse("ответ словами", "", "", "")
		require.Equal(t, "Speech: ответ словами", combined)
	})

	t.Run(`пустые каналы пропускаются без лишних разделителей`, func(t *testing.T) {
		combined := BuildCombinedResponse("речь", "", "код", "python")
		require.Equal(t, "Speech: речь\n\nCode (python):\nкод", combined)
	})

	t.Run(`все пусто - пустая строка`, func(t *testing.T) {
		require.Equal(t, "", BuildCombinedResponse("", "  ", "\n", ""))
	})

	t.Run(`значения обрезаются по пробелам`, func(t *testing.T) {
		combined := BuildCombinedResponse(" речь ", "\tтекст\n", "", "")
		require.Equal(t, "Speech: речь\n\nText: текст", combined)
	})
}
