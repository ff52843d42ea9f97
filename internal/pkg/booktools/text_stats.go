package booktools

import "strings"

// WordsPerMinute 阅读速度
const WordsPerMinute = 200

// WordCount 以空白分隔的词数
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ReadingTime 预计阅读分钟数，向上取整，0 词为 0 分钟
func ReadingTime(words int) int {
	if words <= 0 {
		return 0
	}
	return (words + WordsPerMinute - 1) / WordsPerMinute
}
