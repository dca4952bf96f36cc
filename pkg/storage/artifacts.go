package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"unwrapped_go/models"
)

// Artifacts управляет временными файлами одной пользовательской сессии:
// JSON-снимком канала и итоговой PNG-карточкой. Имена строятся по схеме
// {канал}-{сессия}.{расширение}, поэтому параллельные сессии не
// сталкиваются на диске.
type Artifacts struct {
	Dir string
}

func NewArtifacts(dir string) *Artifacts {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("[ARTIFACTS] не удалось создать каталог %s: %v", dir, err)
	}
	return &Artifacts{Dir: dir}
}

// SnapshotPath возвращает путь JSON-артефакта для пары канал+сессия.
func (a *Artifacts) SnapshotPath(channel, session string) string {
	return filepath.Join(a.Dir, fmt.Sprintf("%s-%s.json", channel, session))
}

// CardPath возвращает путь PNG-артефакта для пары канал+сессия.
func (a *Artifacts) CardPath(channel, session string) string {
	return filepath.Join(a.Dir, fmt.Sprintf("%s-%s.png", channel, session))
}

// SaveSnapshot сериализует снимок канала в сессионный JSON-файл.
func (a *Artifacts) SaveSnapshot(snapshot *models.ChannelSnapshot, channel, session string) (string, error) {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("не удалось сериализовать снимок: %w", err)
	}

	path := a.SnapshotPath(channel, session)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("не удалось записать артефакт: %w", err)
	}
	return path, nil
}

// LoadSnapshot читает снимок канала из JSON-артефакта.
func (a *Artifacts) LoadSnapshot(path string) (*models.ChannelSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать артефакт: %w", err)
	}

	var snapshot models.ChannelSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("не удалось разобрать артефакт: %w", err)
	}
	return &snapshot, nil
}

// Cleanup удаляет оба артефакта сессии. Отсутствие файла не считается
// ошибкой: очистка вызывается и на успешном, и на аварийном пути,
// когда часть файлов может быть ещё не создана.
func (a *Artifacts) Cleanup(channel, session string) {
	for _, path := range []string{
		a.SnapshotPath(channel, session),
		a.CardPath(channel, session),
	} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("[ARTIFACTS] не удалось удалить %s: %v", path, err)
		}
	}
}
