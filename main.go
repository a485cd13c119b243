package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Aayush9266/gtd-app/handlers"
	"github.com/Aayush9266/gtd-app/logging"
	"github.com/Aayush9266/gtd-app/services"
	"github.com/Aayush9266/gtd-app/storage"
)

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// newBlobStore selects the persistence backend from the environment:
// STORAGE_BACKEND=mongo uses one document per blob key, anything else uses
// one file per key under DATA_DIR.
func newBlobStore() storage.BlobStore {
	if os.Getenv("STORAGE_BACKEND") == "mongo" {
		mongoURI := os.Getenv("MONGO_URI")
		mongoDBName := os.Getenv("MONGO_DB_NAME")
		mongoCollectionName := os.Getenv("MONGO_COLLECTION")
		if mongoURI == "" || mongoDBName == "" || mongoCollectionName == "" {
			logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: MONGO_URI, MONGO_DB_NAME and MONGO_COLLECTION must be set for the mongo backend")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
		if err != nil {
			logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
		}
		if err := client.Ping(ctx, nil); err != nil {
			logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
		}
		logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", mongoURI)

		return storage.NewMongoStore(client.Database(mongoDBName).Collection(mongoCollectionName))
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	fileStore, err := storage.NewFileStore(dataDir)
	if err != nil {
		logging.Logger.Fatalf("Event ID: STORAGE_INIT_FAILED, Description: Failed to initialize file storage: %v", err)
	}
	logging.Logger.Infof("Event ID: STORAGE_READY, Description: Using file storage under %s", dataDir)
	return fileStore
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		// Running without a .env file is fine; defaults apply.
		fmt.Println("No .env file loaded:", err)
	}

	logging.InitLogger(os.Getenv("LOG_FILE"))
	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting GTD organizer...")

	blobs := storage.NewBreakerStore(newBlobStore(), "BlobStoreCB")

	taskService := services.NewTaskService(blobs)
	projectService := services.NewProjectService(blobs, taskService)

	taskHandler := handlers.NewTaskHandler(taskService)
	projectHandler := handlers.NewProjectHandler(projectService)

	r := mux.NewRouter()

	r.HandleFunc("/api/tasks", taskHandler.GetTasks).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks", taskHandler.CreateTask).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks/review", taskHandler.GetReviewTasks).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks/{id}", taskHandler.UpdateTask).Methods(http.MethodPut)
	r.HandleFunc("/api/tasks/{id}", taskHandler.DeleteTask).Methods(http.MethodDelete)
	r.HandleFunc("/api/tasks/{id}/status", taskHandler.ChangeTaskStatus).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks/{id}/complete", taskHandler.CompleteTask).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks/{id}/archive", taskHandler.ArchiveTask).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks/{id}/project", taskHandler.AssignProject).Methods(http.MethodPost)

	r.HandleFunc("/api/projects", projectHandler.GetProjects).Methods(http.MethodGet)
	r.HandleFunc("/api/projects", projectHandler.CreateProject).Methods(http.MethodPost)
	r.HandleFunc("/api/projects/{id}", projectHandler.GetProjectByID).Methods(http.MethodGet)
	r.HandleFunc("/api/projects/{id}", projectHandler.UpdateProject).Methods(http.MethodPut)
	r.HandleFunc("/api/projects/{id}", projectHandler.DeleteProject).Methods(http.MethodDelete)

	corsRouter := enableCORS(r)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	serverAddress := fmt.Sprintf(":%s", serverPort)
	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", serverAddress)

	if err := http.ListenAndServe(serverAddress, corsRouter); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}
